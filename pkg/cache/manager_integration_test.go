//go:build integration

package cache

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisContainer starts a Redis container and returns a client
func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

func TestManager_Integration_Stats(t *testing.T) {
	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	manager := NewManager(Config{Redis: client, Logger: zerolog.Nop()})
	ctx := context.Background()

	// One hit and one miss at the keyspace level.
	if err := manager.Set(ctx, ProductKey(1), map[string]any{"id": 1}, ProductTTL); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	var dst map[string]any
	if !manager.Get(ctx, ProductKey(1), &dst) {
		t.Fatal("expected cache hit")
	}
	if manager.Get(ctx, ProductKey(2), &dst) {
		t.Fatal("expected cache miss")
	}

	stats := manager.Stats(ctx)
	if stats.IsZero() {
		t.Fatal("Stats() returned zero value against a live Redis")
	}
	if stats.KeyspaceHits < 1 {
		t.Errorf("KeyspaceHits = %d, want >= 1", stats.KeyspaceHits)
	}
	if stats.KeyspaceMisses < 1 {
		t.Errorf("KeyspaceMisses = %d, want >= 1", stats.KeyspaceMisses)
	}
	if stats.ConnectedClients < 1 {
		t.Errorf("ConnectedClients = %d, want >= 1", stats.ConnectedClients)
	}
	if stats.TotalCommandsProcessed < 3 {
		t.Errorf("TotalCommandsProcessed = %d, want >= 3", stats.TotalCommandsProcessed)
	}
	if stats.UsedMemoryHuman == "" || stats.UsedMemoryHuman == "0B" {
		t.Errorf("UsedMemoryHuman = %q, want a real value", stats.UsedMemoryHuman)
	}
}

func TestManager_Integration_ClearByPrefix(t *testing.T) {
	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	manager := NewManager(Config{Redis: client, Logger: zerolog.Nop()})
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		if err := manager.Set(ctx, ProductKey(i), map[string]any{"id": i}, ProductTTL); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	if err := client.Set(ctx, "other:1", "x", 0).Err(); err != nil {
		t.Fatalf("seed other key: %v", err)
	}

	cleared, err := manager.ClearByPrefix(ctx, ProductKeyPrefix)
	if err != nil {
		t.Fatalf("ClearByPrefix failed: %v", err)
	}
	if cleared != 3 {
		t.Errorf("cleared = %d, want 3", cleared)
	}

	if n, _ := client.Exists(ctx, "other:1").Result(); n != 1 {
		t.Error("keys outside the prefix must survive a clear")
	}
}
