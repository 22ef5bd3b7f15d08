//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcredpanda "github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// RedpandaContainer wraps a testcontainers Redpanda instance for exercising
// the Kafka audit sink.
type RedpandaContainer struct {
	Container testcontainers.Container
	Brokers   []string
	Client    *kgo.Client
}

// NewRedpandaContainer starts a Redpanda container, creates the given topic,
// and returns a connected client.
func NewRedpandaContainer(t *testing.T, topic string) *RedpandaContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcredpanda.Run(ctx, "redpandadata/redpanda:v24.1.7")
	if err != nil {
		t.Fatalf("failed to start redpanda container: %v", err)
	}

	broker, err := container.KafkaSeedBroker(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get redpanda broker: %v", err)
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(topic),
	)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to create kafka client: %v", err)
	}

	admin := kadm.NewClient(client)
	if _, err := admin.CreateTopics(ctx, 1, 1, nil, topic); err != nil {
		client.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to create topic %q: %v", topic, err)
	}

	return &RedpandaContainer{
		Container: container,
		Brokers:   []string{broker},
		Client:    client,
	}
}
