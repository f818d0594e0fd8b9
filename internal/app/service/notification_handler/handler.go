package notification_handler

import (
	"context"
	"sync"
	"time"

	"github.com/fatflowers/bankgate/internal/app/service/events"
	notificationlog "github.com/fatflowers/bankgate/internal/app/service/notification_log"
	"github.com/fatflowers/bankgate/internal/app/service/verification"
	"github.com/fatflowers/bankgate/internal/models"
	"github.com/fatflowers/bankgate/pkg/logctx"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const publishTimeout = 5 * time.Second

// AuditLog persists the audit record of a processed notification.
type AuditLog interface {
	Save(ctx context.Context, log *models.PaymentNotificationLog)
}

// Processor runs the verification pipeline.
type Processor interface {
	Process(ctx context.Context, n *verification.PaymentNotification) *verification.Result
}

type NotificationHandler struct {
	pipeline  Processor
	audit     AuditLog
	publisher events.Publisher
	Logger    *zap.SugaredLogger

	now func() time.Time

	// inflight counts publish goroutines still running.
	inflight sync.WaitGroup
}

func NewNotificationHandler(pipeline Processor, audit AuditLog, publisher events.Publisher, log *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{pipeline: pipeline, audit: audit, publisher: publisher, Logger: log, now: time.Now}
}

var Module = fx.Options(
	fx.Provide(newNotificationHandler),
)

// newNotificationHandler depends on the publisher, so fx runs this OnStop
// before the one that closes the Kafka writer.
func newNotificationHandler(lc fx.Lifecycle, pipeline *verification.Pipeline, audit *notificationlog.Service, publisher events.Publisher, log *zap.SugaredLogger) *NotificationHandler {
	h := NewNotificationHandler(pipeline, audit, publisher, log)
	lc.Append(fx.Hook{OnStop: h.Drain})
	return h
}

// Drain waits for in-flight publishes to finish or for ctx to end.
func (h *NotificationHandler) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		h.Logger.Warnw("notify_publish_drain_timeout", "error", ctx.Err().Error())
		return ctx.Err()
	}
}

// HandleNotification always returns an acknowledgement. bindErr is the
// transport's decoding error, if any; an undecodable body is processed as an
// empty notification so it is answered through the normal validation gate.
func (h *NotificationHandler) HandleNotification(ctx context.Context, n *verification.PaymentNotification, bindErr error) *verification.PaymentAcknowledgement {
	log := logctx.FromCtx(ctx, h.Logger)
	receivedAt := h.now()

	if bindErr != nil {
		log.Warnw("notify_bind_failed", "error", bindErr.Error())
		n = &verification.PaymentNotification{}
	}
	if n == nil {
		n = &verification.PaymentNotification{}
	}

	res := h.pipeline.Process(ctx, n)
	log.Infow("notify_processed", append(n.LogFields(),
		"code", res.Ack.Code,
		"outcome", res.Outcome.String(),
		"response_id", res.Ack.ResponseID,
	)...)

	h.saveAudit(ctx, n, res, receivedAt)

	if res.Outcome == verification.OutcomeSuccess {
		h.publishVerified(ctx, n, res)
	}
	return res.Ack
}

func (h *NotificationHandler) saveAudit(ctx context.Context, n *verification.PaymentNotification, res *verification.Result, receivedAt time.Time) {
	if h.audit == nil {
		return
	}
	h.audit.Save(ctx, buildAuditLog(ctx, n, res, receivedAt))
}

func buildAuditLog(ctx context.Context, n *verification.PaymentNotification, res *verification.Result, receivedAt time.Time) *models.PaymentNotificationLog {
	data := res.Payload
	if data == nil {
		data, _ = json.Marshal(n)
	}
	resMap := map[string]any{"ack": res.Ack}
	if len(res.Violations) > 0 {
		resMap["violations"] = res.Violations
	}
	resBytes, _ := json.Marshal(resMap)

	return &models.PaymentNotificationLog{
		BankCode:         n.BankCode,
		TokenKey:         n.TokenKey,
		TraceID:          logctx.TraceID(ctx),
		TraceTransfer:    n.TraceTransfer,
		ResponseCode:     res.Ack.Code,
		ResponseID:       res.Ack.ResponseID,
		NotificationTime: receivedAt,
		Data:             datatypes.JSON(data),
		Result:           lo.ToPtr(datatypes.JSON(resBytes)),
		Status:           auditStatus(res.Outcome),
	}
}

func auditStatus(o verification.Outcome) models.PaymentNotificationLogStatus {
	switch {
	case o == verification.OutcomeSuccess:
		return models.PaymentNotificationLogStatusStored
	case o.Retryable():
		return models.PaymentNotificationLogStatusFailed
	default:
		return models.PaymentNotificationLogStatusRejected
	}
}

// publishVerified is best effort: the acknowledgement is already decided and
// a publish failure is only logged.
func (h *NotificationHandler) publishVerified(ctx context.Context, n *verification.PaymentNotification, res *verification.Result) {
	if h.publisher == nil {
		return
	}
	evt := &events.PaymentVerified{
		Type:          events.EventTypePaymentVerified,
		BankCode:      n.BankCode,
		TokenKey:      n.TokenKey,
		TraceTransfer: n.TraceTransfer,
		OrderCode:     n.OrderCode,
		DebitAmount:   lo.FromPtr(n.DebitAmount),
		RealAmount:    n.RealAmount,
		PayDate:       n.PayDate,
		ResponseID:    res.Ack.ResponseID,
		TraceID:       logctx.TraceID(ctx),
		VerifiedAt:    h.now(),
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		defer cancel()
		if err := h.publisher.PublishVerified(pubCtx, evt); err != nil {
			logctx.FromCtx(pubCtx, h.Logger).Errorw("notify_publish_failed", "token_key", evt.TokenKey, "error", err.Error())
		}
	}()
}
