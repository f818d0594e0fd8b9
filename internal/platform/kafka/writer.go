package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"

	cfgpkg "github.com/fatflowers/bankgate/pkg/config"
)

const (
	DefaultBatchSize    = 100
	DefaultBatchTimeout = 50 * time.Millisecond
	DefaultWriteTimeout = 5 * time.Second
)

// NewWriter builds a synchronous writer for the verified-payment topic.
// Messages with the same key (token key) land on the same partition.
func NewWriter(cfg cfgpkg.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.ReferenceHash{},
		BatchSize:              DefaultBatchSize,
		BatchTimeout:           DefaultBatchTimeout,
		WriteTimeout:           DefaultWriteTimeout,
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		AllowAutoTopicCreation: false,
	}
}
