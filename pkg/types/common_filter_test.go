package types

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

type sqlBuilder struct {
	sql  []byte
	vars []interface{}
}

func (b *sqlBuilder) WriteByte(c byte) error             { b.sql = append(b.sql, c); return nil }
func (b *sqlBuilder) WriteString(s string) (int, error) { b.sql = append(b.sql, s...); return len(s), nil }
func (b *sqlBuilder) WriteQuoted(field interface{}) {
	switch v := field.(type) {
	case clause.Column:
		b.sql = append(b.sql, v.Name...)
	case string:
		b.sql = append(b.sql, v...)
	}
}
func (b *sqlBuilder) AddVar(_ clause.Writer, vars ...interface{}) {
	for i, v := range vars {
		if i > 0 {
			b.sql = append(b.sql, ',')
		}
		b.vars = append(b.vars, v)
		b.sql = append(b.sql, '?')
	}
}
func (b *sqlBuilder) AddError(error) error { return nil }

var testFields = NewFilterFields("bank_code", "notification_time", "data->>'orderCode'")

func TestFilterFields_Validate(t *testing.T) {
	require.NoError(t, testFields.Validate(nil))
	require.NoError(t, testFields.Validate([]*CommonFilter{
		{Field: "bank_code", Operator: CommonFilterOperatorIn, Values: []any{"VNB", "ACB"}},
		{Field: "notification_time", Operator: CommonFilterOperatorRange, Values: []any{"2024-01-01", "2024-01-31"}},
		{Field: "data->>'orderCode'", Operator: CommonFilterOperatorEq, Values: []any{"ORD-1"}},
	}))

	cases := map[string]*CommonFilter{
		"null filter":       nil,
		"unknown column":    {Field: "checksum", Operator: CommonFilterOperatorEq, Values: []any{"x"}},
		"injected path":     {Field: "1=1 OR data->>'x'", Operator: CommonFilterOperatorEq, Values: []any{"x"}},
		"unlisted path":     {Field: "data->>'checkSum'", Operator: CommonFilterOperatorEq, Values: []any{"x"}},
		"no values":         {Field: "bank_code", Operator: CommonFilterOperatorEq},
		"two values for eq": {Field: "bank_code", Operator: CommonFilterOperatorEq, Values: []any{"a", "b"}},
		"half a range":      {Field: "notification_time", Operator: CommonFilterOperatorRange, Values: []any{"2024-01-01"}},
		"empty in":          {Field: "bank_code", Operator: CommonFilterOperatorIn, Values: []any{}},
		"unknown operator":  {Field: "bank_code", Operator: "date_range", Values: []any{"a"}},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			err := testFields.Validate([]*CommonFilter{f})
			require.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestCommonFilter_Build(t *testing.T) {
	tests := []struct {
		name   string
		filter *CommonFilter
		sql    string
		vars   []interface{}
	}{
		{"eq", &CommonFilter{Field: "bank_code", Operator: CommonFilterOperatorEq, Values: []any{"VNB"}}, "bank_code = ?", []interface{}{"VNB"}},
		{"not eq", &CommonFilter{Field: "bank_code", Operator: CommonFilterOperatorNotEq, Values: []any{"VNB"}}, "bank_code <> ?", []interface{}{"VNB"}},
		{"gte", &CommonFilter{Field: "notification_time", Operator: CommonFilterOperatorGte, Values: []any{"2024-01-01"}}, "notification_time >= ?", []interface{}{"2024-01-01"}},
		{"range", &CommonFilter{Field: "notification_time", Operator: CommonFilterOperatorRange, Values: []any{"a", "b"}}, "(notification_time >= ? AND notification_time <= ?)", []interface{}{"a", "b"}},
		{"in", &CommonFilter{Field: "bank_code", Operator: CommonFilterOperatorIn, Values: []any{"VNB", "ACB"}}, "bank_code IN (?,?)", []interface{}{"VNB", "ACB"}},
		{"json path", &CommonFilter{Field: "data->>'orderCode'", Operator: CommonFilterOperatorEq, Values: []any{"ORD-1"}}, "data->>'orderCode' = ?", []interface{}{"ORD-1"}},
		{"json path range", &CommonFilter{Field: "data->>'orderCode'", Operator: CommonFilterOperatorRange, Values: []any{"A", "B"}}, "data->>'orderCode' BETWEEN ? AND ?", []interface{}{"A", "B"}},
		{"no values", &CommonFilter{Field: "bank_code", Operator: CommonFilterOperatorEq}, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &sqlBuilder{}
			tt.filter.Build(b)
			require.Equal(t, tt.sql, string(b.sql))
			require.Equal(t, tt.vars, b.vars)
		})
	}

	require.NotPanics(t, func() { (*CommonFilter)(nil).Build(&sqlBuilder{}) })
}
