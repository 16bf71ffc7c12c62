// Package gateway publishes cache-invalidation and sale-status events for
// the dashboard's read caches and notification layer.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventSaleCommitted = "sale_committed"
	EventSaleFailed    = "sale_failed"
)

// Event is the wire envelope. CacheKeys names the read caches to invalidate
// ("sales", "product:{id}").
type Event struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	SaleID     int64     `json:"sale_id,omitempty"`
	CacheKeys  []string  `json:"cache_keys,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Kafka publishes events to a Kafka topic. Publish failures are logged and
// swallowed: a committed sale must never be failed by its notification.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			BatchSize:    100,
		},
	}
}

func (k *Kafka) SaleCommitted(ctx context.Context, saleID int64, cacheKeys []string) {
	k.publish(ctx, Event{
		ID:         uuid.NewString(),
		Kind:       EventSaleCommitted,
		SaleID:     saleID,
		CacheKeys:  cacheKeys,
		OccurredAt: time.Now().UTC(),
	})
}

func (k *Kafka) SaleFailed(ctx context.Context, reason string) {
	k.publish(ctx, Event{
		ID:         uuid.NewString(),
		Kind:       EventSaleFailed,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	})
}

func (k *Kafka) publish(ctx context.Context, e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		slog.Error("failed to encode gateway event", "kind", e.Kind, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(e.Kind),
		Value: payload,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("failed to publish gateway event",
			"kind", e.Kind, "sale_id", e.SaleID, "error", err)
	}
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

// Log is the fallback notifier when no broker is configured.
type Log struct{}

func (Log) SaleCommitted(_ context.Context, saleID int64, cacheKeys []string) {
	slog.Info("sale committed", "sale_id", saleID, "cache_keys", cacheKeys)
}

func (Log) SaleFailed(_ context.Context, reason string) {
	slog.Warn("sale failed", "reason", reason)
}
