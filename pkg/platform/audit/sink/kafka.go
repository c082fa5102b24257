// Package sink provides durable sinks for audit events.
package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"proofgate/internal/platform/kafka/producer"
	"proofgate/pkg/platform/audit"
)

// KafkaStore streams audit events to a Kafka topic, keyed by subject so all
// events for one subject land on the same partition in order.
type KafkaStore struct {
	producer *producer.Producer
	topic    string
}

// NewKafkaStore builds a Kafka-backed audit store.
func NewKafkaStore(p *producer.Producer, topic string) *KafkaStore {
	return &KafkaStore{producer: p, topic: topic}
}

// Append publishes the event. The publisher treats failures as non-fatal;
// the local store remains the source of truth for reads.
func (s *KafkaStore) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	return s.producer.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.SubjectID.String()),
		Value: payload,
		Headers: map[string]string{
			"action": event.Action,
		},
	})
}

// Tee fans one append out to multiple stores. The first error is returned
// after all stores have been attempted.
type Tee []audit.Store

// Append delivers the event to every store.
func (t Tee) Append(ctx context.Context, event audit.Event) error {
	var firstErr error
	for _, s := range t {
		if err := s.Append(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
