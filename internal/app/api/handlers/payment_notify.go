package handlers

import (
	"context"
	"net/http"

	"github.com/fatflowers/bankgate/internal/app/service/verification"
	"github.com/fatflowers/bankgate/pkg/logctx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationProcessor answers a bank payment notification. bindErr carries
// the body decoding failure, if any.
type NotificationProcessor interface {
	HandleNotification(ctx context.Context, n *verification.PaymentNotification, bindErr error) *verification.PaymentAcknowledgement
}

// @Summary      Bank payment notification
// @Description  Verifies a payment notification sent by a partner bank, stores it once per tokenKey and answers with a signed acknowledgement. The HTTP status is always 200; the outcome is carried by the code field (00 Success, 01 Invalid Input Data, 02 Bank Code not found, 03 Invalid CheckSum, 99 System error).
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body verification.PaymentNotification true "Payment notification"
// @Success      200  {object}  verification.PaymentAcknowledgement
// @Router       /api/v1/payment/notify [post]
// @Router       /api/process [post]
// ApiPaymentNotify handles POST /api/v1/payment/notify and the legacy POST /api/process
func ApiPaymentNotify(h NotificationProcessor, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logctx.FromGin(c, log).Infow("payment_notify_received")

		var n verification.PaymentNotification
		bindErr := c.ShouldBindJSON(&n)

		ack := h.HandleNotification(ctx, &n, bindErr)
		logctx.FromGin(c, log).Infow("payment_notify_answered", "code", ack.Code, "response_id", ack.ResponseID)
		c.JSON(http.StatusOK, ack)
	}
}

// RegisterPaymentNotifyRoutes mounts the notify endpoint under r, expected at "/api/v1/payment".
func RegisterPaymentNotifyRoutes(r gin.IRouter, h NotificationProcessor, log *zap.SugaredLogger) {
	r.POST("/notify", ApiPaymentNotify(h, log))
}

// RegisterLegacyNotifyRoutes mounts the pre-versioning path under r, expected at "/api".
func RegisterLegacyNotifyRoutes(r gin.IRouter, h NotificationProcessor, log *zap.SugaredLogger) {
	r.POST("/process", ApiPaymentNotify(h, log))
}
