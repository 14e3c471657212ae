//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Run with: LOWPOP_REDIS=localhost:6379 LOWPOP_MONGO=mongodb://localhost:27017 go test -tags integration ./pkg/cache

func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "test:" + uuid.NewString()
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get(new key) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = %q, hit %v, err %v", data, hit, err)
	}
	if err := c.Set(ctx, key, []byte("replaced"), time.Minute); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}
	if data, _, _ := c.Get(ctx, key); string(data) != "replaced" {
		t.Errorf("overwrite lost: %q", data)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry survived Delete")
	}

	if err := c.Set(ctx, key, []byte("short"), time.Second); err != nil {
		t.Fatal(err)
	}
	time.Sleep(1500 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("expired entry returned")
	}
}

func TestRedisCacheIntegration(t *testing.T) {
	addr := os.Getenv("LOWPOP_REDIS")
	if addr == "" {
		t.Skip("LOWPOP_REDIS not set")
	}
	c, err := NewRedisCache(context.Background(), addr)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCacheIntegration(t *testing.T) {
	uri := os.Getenv("LOWPOP_MONGO")
	if uri == "" {
		t.Skip("LOWPOP_MONGO not set")
	}
	c, err := NewMongoCache(context.Background(), uri, "lowpop_test", "")
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}
