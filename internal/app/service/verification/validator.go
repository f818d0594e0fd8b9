package verification

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	mobilePattern  = regexp.MustCompile(`^\d{10}$`)
	payDatePattern = regexp.MustCompile(`^\d{14}$`)
)

// FieldViolation describes one field that failed validation.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

const (
	reasonBlank      = "blank"
	reasonMissing    = "missing"
	reasonFormat     = "format"
	reasonNotInteger = "not_integer"
)

// Validate checks every field of n and returns all violations. It never stops
// at the first failure. A nil notification is treated as an empty one.
func Validate(n *PaymentNotification) []FieldViolation {
	if n == nil {
		n = &PaymentNotification{}
	}
	var out []FieldViolation
	add := func(v *FieldViolation) {
		if v != nil {
			out = append(out, *v)
		}
	}

	add(requireText("tokenKey", n.TokenKey))
	add(requireText("apiID", n.APIID))
	add(requirePattern("mobile", n.Mobile, mobilePattern))
	add(requireText("bankCode", n.BankCode))
	add(requireText("accountNo", n.AccountNo))
	add(requirePattern("payDate", n.PayDate, payDatePattern))
	add(requireText("additionalData", n.AdditionalData))
	add(requireInt("debitAmount", n.DebitAmount))
	add(requireText("respCode", n.RespCode))
	add(requireText("respDesc", n.RespDesc))
	add(requireText("traceTransfer", n.TraceTransfer))
	add(requireText("messageType", n.MessageType))
	add(requireText("checkSum", n.CheckSum))
	add(requireText("orderCode", n.OrderCode))
	add(requireText("userName", n.UserName))
	add(requireIntegerText("realAmount", n.RealAmount))
	add(requireText("promotionCode", n.PromotionCode))

	return out
}

// Valid reports whether n passes every field check.
func Valid(n *PaymentNotification) bool {
	return len(Validate(n)) == 0
}

func requireText(field, value string) *FieldViolation {
	if strings.TrimSpace(value) == "" {
		return &FieldViolation{Field: field, Reason: reasonBlank}
	}
	return nil
}

func requirePattern(field, value string, re *regexp.Regexp) *FieldViolation {
	if v := requireText(field, value); v != nil {
		return v
	}
	if !re.MatchString(value) {
		return &FieldViolation{Field: field, Reason: reasonFormat}
	}
	return nil
}

func requireInt(field string, value *int64) *FieldViolation {
	if value == nil {
		return &FieldViolation{Field: field, Reason: reasonMissing}
	}
	return nil
}

func requireIntegerText(field, value string) *FieldViolation {
	if v := requireText(field, value); v != nil {
		return v
	}
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return &FieldViolation{Field: field, Reason: reasonNotInteger}
	}
	return nil
}
