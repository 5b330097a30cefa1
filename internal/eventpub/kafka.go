// Package eventpub publishes transaction completion events.
package eventpub

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/go-wallet/ledger-engine/internal/domain"
)

// KafkaPublisher writes transaction completed events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns a publisher writing to the given brokers and topic.
func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(brokers, ",")...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish marshals the event and writes it keyed by account id so that
// events for one account stay ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.TransactionCompletedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.AccountID),
		Value: data,
	})
}

// Close releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
