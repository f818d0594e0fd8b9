package events

import (
	"context"
	"fmt"
	"time"

	kafkaplatform "github.com/fatflowers/bankgate/internal/platform/kafka"
	"github.com/fatflowers/bankgate/pkg/config"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const EventTypePaymentVerified = "payment.verified"

// PaymentVerified is emitted after a notification has been verified and stored.
type PaymentVerified struct {
	Type          string    `json:"type"`
	BankCode      string    `json:"bankCode"`
	TokenKey      string    `json:"tokenKey"`
	TraceTransfer string    `json:"traceTransfer"`
	OrderCode     string    `json:"orderCode"`
	DebitAmount   int64     `json:"debitAmount"`
	RealAmount    string    `json:"realAmount"`
	PayDate       string    `json:"payDate"`
	ResponseID    string    `json:"responseId"`
	TraceID       string    `json:"traceId,omitempty"`
	VerifiedAt    time.Time `json:"verifiedAt"`
}

// Publisher delivers verified-payment events downstream.
type Publisher interface {
	PublishVerified(ctx context.Context, evt *PaymentVerified) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	w messageWriter
}

func (p *kafkaPublisher) PublishVerified(ctx context.Context, evt *PaymentVerified) error {
	if evt.Type == "" {
		evt.Type = EventTypePaymentVerified
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", evt.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(evt.TokenKey),
		Value: body,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(evt.Type)},
			{Key: "bank_code", Value: []byte(evt.BankCode)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", evt.Type, err)
	}
	return nil
}

type noopPublisher struct{}

func (noopPublisher) PublishVerified(context.Context, *PaymentVerified) error { return nil }

// New returns a Kafka publisher, or a no-op one when no brokers are configured.
func New(lc fx.Lifecycle, cfg *config.Config, log *zap.SugaredLogger) Publisher {
	if !cfg.Kafka.Enabled() {
		log.Infow("kafka disabled, verified-payment events are not published")
		return noopPublisher{}
	}
	w := kafkaplatform.NewWriter(cfg.Kafka)
	// consumers of the publisher are built later, so their OnStop hooks have
	// drained in-flight writes by the time this one runs
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Infow("closing kafka writer")
			return w.Close()
		},
	})
	log.Infow("kafka publisher ready", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	return &kafkaPublisher{w: w}
}

var Module = fx.Options(
	fx.Provide(New),
)
