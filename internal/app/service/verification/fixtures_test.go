package verification

import "github.com/samber/lo"

const (
	testPartner = "VNB"
	testSecret  = "s3cret"

	// digests of the sample notification for partner VNB / "s3cret"
	sampleHMACDigest   = "a4289d329853e11156504988371ce4375fdad54b047c2e79eb4ca0b42896c6b8"
	sampleSuffixDigest = "1a85951a506b31c383bfa2f00397054367d3218f1cde5649186d71a4d425bff6"
)

func sampleNotification() *PaymentNotification {
	return &PaymentNotification{
		TokenKey:       "tok-1",
		APIID:          "api-1",
		Mobile:         "0123456789",
		BankCode:       testPartner,
		AccountNo:      "0001",
		PayDate:        "20240101120000",
		AdditionalData: "extra",
		DebitAmount:    lo.ToPtr(int64(1000)),
		RespCode:       "00",
		RespDesc:       "ok",
		TraceTransfer:  "T1",
		MessageType:    "01",
		CheckSum:       sampleHMACDigest,
		OrderCode:      "ORD-1",
		UserName:       "alice",
		RealAmount:     "1000",
		PromotionCode:  "NONE",
	}
}
