//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cardspace/internal/platform/logger"
	audit "cardspace/pkg/platform/audit"
	"cardspace/pkg/platform/audit/store/kafka"
	auditmem "cardspace/pkg/platform/audit/store/memory"
	"cardspace/pkg/testutil/containers"
)

const testTopic = "cardspace.audit"

type KafkaStoreSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	store    *kafka.Store
	memory   *auditmem.InMemoryStore
}

func TestKafkaStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	s.redpanda = containers.NewRedpandaContainer(s.T(), testTopic)
	s.memory = auditmem.NewInMemoryStore()
	s.store = kafka.New(s.redpanda.Client, testTopic, s.memory, logger.NewNop())
}

func (s *KafkaStoreSuite) TestAppendMirrorsToTopic() {
	ctx := context.Background()

	event := audit.Event{
		Timestamp: time.Now().UTC(),
		UserID:    "user_2kafka",
		Action:    "onboarding_completed",
		RequestID: "req-1",
	}
	s.Require().NoError(s.store.Append(ctx, event))

	// The delegate sees the event synchronously.
	events, err := s.store.ListByUser(ctx, "user_2kafka")
	s.Require().NoError(err)
	s.Require().Len(events, 1)

	// The mirror arrives on the topic.
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	fetches := s.redpanda.Client.PollFetches(fetchCtx)
	s.Require().NoError(fetches.Err())

	records := fetches.Records()
	s.Require().NotEmpty(records)
	s.Equal("user_2kafka", string(records[0].Key))

	var got audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal("onboarding_completed", got.Action)
}
