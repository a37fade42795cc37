package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	s, err := NewRedisStore(RedisOptions{Addr: addr, Prefix: "test:" + time.Now().Format("150405.000") + ":"})
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	defer s.Close()
	ctx := context.Background()
	defer s.Clear(ctx)

	if err := s.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}

	stats, err := s.Stats(ctx)
	if err != nil || stats.Total != 1 {
		t.Fatalf("Stats() = %+v, %v", stats, err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("entry survived Clear()")
	}
}
