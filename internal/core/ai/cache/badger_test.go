package cache

import (
	"context"
	"testing"
	"time"
)

func newTestBadger(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenBadgerStore("", true)
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	s := newTestBadger(t)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v", ok, err)
	}

	if err := s.Set(ctx, "k", []byte(`{"a":1}`), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, "p", []byte("forever"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(got) != `{"a":1}` {
		t.Fatalf("Get(k) = %q, %v, %v", got, ok, err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 2 || stats.Active != 2 {
		t.Errorf("Stats() = %+v, want 2 active", stats)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("entry survived Clear()")
	}
}

func TestBadgerStoreTTL(t *testing.T) {
	if testing.Short() {
		t.Skip("ttl test sleeps")
	}
	s := newTestBadger(t)
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(2100 * time.Millisecond)

	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("expired entry reported present")
	}
}
