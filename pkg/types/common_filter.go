package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

// ErrInvalidRequest marks caller input that can never be served. Admin
// handlers answer it with a bad request instead of an internal error.
var ErrInvalidRequest = errors.New("invalid request")

type CommonFilterOperator string

const (
	CommonFilterOperatorEq    CommonFilterOperator = "eq"
	CommonFilterOperatorNotEq CommonFilterOperator = "not_eq"
	CommonFilterOperatorLt    CommonFilterOperator = "lt"
	CommonFilterOperatorLte   CommonFilterOperator = "lte"
	CommonFilterOperatorGt    CommonFilterOperator = "gt"
	CommonFilterOperatorGte   CommonFilterOperator = "gte"
	CommonFilterOperatorRange CommonFilterOperator = "range"
	CommonFilterOperatorIn    CommonFilterOperator = "in"
)

var comparisons = map[CommonFilterOperator]string{
	CommonFilterOperatorEq:    "=",
	CommonFilterOperatorNotEq: "<>",
	CommonFilterOperatorLt:    "<",
	CommonFilterOperatorLte:   "<=",
	CommonFilterOperatorGt:    ">",
	CommonFilterOperatorGte:   ">=",
}

// CommonFilter is a single predicate on a column or a jsonb path of the audit
// log, e.g. {"field":"response_code","operator":"in","values":["03","99"]}.
type CommonFilter struct {
	Field    string               `json:"field"`
	Operator CommonFilterOperator `json:"operator"`
	Values   []any                `json:"values"`
}

// FilterFields is the set of fields a query accepts filters on. jsonb paths
// such as data->>'orderCode' are written into SQL as is, so only fixed paths
// belong here.
type FilterFields map[string]struct{}

func NewFilterFields(fields ...string) FilterFields {
	return lo.SliceToMap(fields, func(f string) (string, struct{}) { return f, struct{}{} })
}

// Validate rejects nil filters, fields outside ff and operators given the
// wrong number of values. Every error wraps ErrInvalidRequest.
func (ff FilterFields) Validate(filters []*CommonFilter) error {
	for i, f := range filters {
		if f == nil {
			return fmt.Errorf("%w: filter %d is null", ErrInvalidRequest, i)
		}
		if _, ok := ff[f.Field]; !ok {
			return fmt.Errorf("%w: unsupported filter field %q", ErrInvalidRequest, f.Field)
		}
		if err := f.checkValues(); err != nil {
			return fmt.Errorf("%w: filter %s: %v", ErrInvalidRequest, f.Field, err)
		}
	}
	return nil
}

func (f *CommonFilter) checkValues() error {
	switch {
	case comparisons[f.Operator] != "":
		if len(f.Values) != 1 {
			return fmt.Errorf("%s takes one value, got %d", f.Operator, len(f.Values))
		}
	case f.Operator == CommonFilterOperatorRange:
		if len(f.Values) != 2 {
			return fmt.Errorf("range takes two values, got %d", len(f.Values))
		}
	case f.Operator == CommonFilterOperatorIn:
		if len(f.Values) == 0 {
			return errors.New("in takes at least one value")
		}
	default:
		return fmt.Errorf("unsupported operator %q", f.Operator)
	}
	return nil
}

// Build writes the predicate. Field must have passed FilterFields.Validate.
func (f *CommonFilter) Build(builder clause.Builder) {
	if f == nil || len(f.Values) == 0 {
		return
	}
	if strings.Contains(f.Field, "->") {
		if expr := f.jsonPathExpr(); expr != nil {
			expr.Build(builder)
		}
		return
	}

	value := f.Values[0]

	switch f.Operator {
	case CommonFilterOperatorEq:
		clause.Eq{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorNotEq:
		clause.Neq{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorLt:
		clause.Lt{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorLte:
		clause.Lte{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorGt:
		clause.Gt{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorGte:
		clause.Gte{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorRange:
		if len(f.Values) < 2 {
			return
		}
		clause.And(clause.Gte{Column: f.Field, Value: f.Values[0]}, clause.Lte{Column: f.Field, Value: f.Values[1]}).Build(builder)
	case CommonFilterOperatorIn:
		clause.IN{Column: f.Field, Values: f.Values}.Build(builder)
	}
}

// jsonPathExpr compares a jsonb path, which the column clauses would quote as
// an identifier.
func (f *CommonFilter) jsonPathExpr() clause.Expression {
	if op, ok := comparisons[f.Operator]; ok {
		return clause.Expr{SQL: f.Field + " " + op + " ?", Vars: []any{f.Values[0]}}
	}
	switch f.Operator {
	case CommonFilterOperatorRange:
		if len(f.Values) < 2 {
			return nil
		}
		return clause.Expr{SQL: f.Field + " BETWEEN ? AND ?", Vars: []any{f.Values[0], f.Values[1]}}
	case CommonFilterOperatorIn:
		return clause.Expr{SQL: f.Field + " IN ?", Vars: []any{f.Values}}
	}
	return nil
}
