// Package kafka mirrors audit events to a Kafka topic so downstream
// consumers (analytics, compliance) get them off-process. Reads stay on the
// wrapped store; Kafka is write-only here.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	id "cardspace/pkg/domain"
	audit "cardspace/pkg/platform/audit"
)

type Store struct {
	client   *kgo.Client
	topic    string
	delegate audit.Store
	logger   *slog.Logger
}

// New wraps delegate so every appended event is also produced to topic.
// Produce failures are logged, never surfaced: audit mirroring must not fail
// the operation being audited.
func New(client *kgo.Client, topic string, delegate audit.Store, logger *slog.Logger) *Store {
	return &Store{client: client, topic: topic, delegate: delegate, logger: logger}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if err := s.delegate.Append(ctx, event); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.UserID.String()),
		Value: payload,
	}
	s.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			s.logger.Error("audit event produce failed",
				"error", err,
				"topic", s.topic,
				"action", event.Action,
			)
		}
	})
	return nil
}

func (s *Store) ListByUser(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	return s.delegate.ListByUser(ctx, userID)
}

// Close flushes buffered records and releases the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Flush(ctx); err != nil {
		return fmt.Errorf("flush audit producer: %w", err)
	}
	s.client.Close()
	return nil
}
