package verification

// PaymentNotification is the inbound bank payment notification. JSON names
// follow the partner wire format.
type PaymentNotification struct {
	TokenKey       string `json:"tokenKey"`
	APIID          string `json:"apiID"`
	Mobile         string `json:"mobile"`
	BankCode       string `json:"bankCode"`
	AccountNo      string `json:"accountNo"`
	PayDate        string `json:"payDate"`
	AdditionalData string `json:"additionalData"`
	DebitAmount    *int64 `json:"debitAmount"`
	RespCode       string `json:"respCode"`
	RespDesc       string `json:"respDesc"`
	TraceTransfer  string `json:"traceTransfer"`
	MessageType    string `json:"messageType"`
	CheckSum       string `json:"checkSum"`
	OrderCode      string `json:"orderCode"`
	UserName       string `json:"userName"`
	RealAmount     string `json:"realAmount"`
	PromotionCode  string `json:"promotionCode"`
}

// LogFields returns the identifying fields that are safe to log.
func (n *PaymentNotification) LogFields() []interface{} {
	if n == nil {
		return nil
	}
	return []interface{}{
		"bank_code", n.BankCode,
		"token_key", n.TokenKey,
		"trace_transfer", n.TraceTransfer,
		"message_type", n.MessageType,
	}
}

// PaymentAcknowledgement is returned for every notification, whatever the outcome.
type PaymentAcknowledgement struct {
	Code         string  `json:"code"`
	Message      string  `json:"message"`
	ResponseID   string  `json:"responseId"`
	ResponseTime string  `json:"responseTime"`
	CheckSum     *string `json:"checkSum"`
}
