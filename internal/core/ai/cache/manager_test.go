package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(maxSize int) (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewManager(ManagerOptions{MaxSize: maxSize, Now: clock.Now}), clock
}

func TestManagerGetSet(t *testing.T) {
	m, _ := newTestManager(0)
	defer m.Close()
	ctx := context.Background()

	if _, ok, _ := m.Get(ctx, "missing"); ok {
		t.Fatal("Get(missing) reported present")
	}

	if err := m.Set(ctx, "k", []byte("v1"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := m.Set(ctx, "k", []byte("v2"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}
	if string(got) != "v2" {
		t.Errorf("Get() = %q, want overwritten value v2", got)
	}
}

func TestManagerExpiry(t *testing.T) {
	m, clock := newTestManager(0)
	defer m.Close()
	ctx := context.Background()

	_ = m.Set(ctx, "short", []byte("a"), time.Minute)
	_ = m.Set(ctx, "forever", []byte("b"), 0)
	_ = m.Set(ctx, "negative", []byte("c"), -time.Second)

	clock.Advance(2 * time.Minute)

	stats, _ := m.Stats(ctx)
	if stats != (Stats{Total: 3, Active: 2, Expired: 1}) {
		t.Errorf("Stats() before read = %+v", stats)
	}

	if _, ok, _ := m.Get(ctx, "short"); ok {
		t.Error("expired entry reported present")
	}
	if m.Len() != 2 {
		t.Errorf("expired entry not deleted on read, Len() = %d", m.Len())
	}

	clock.Advance(1000 * time.Hour)
	for _, k := range []string{"forever", "negative"} {
		if _, ok, _ := m.Get(ctx, k); !ok {
			t.Errorf("entry %q without ttl expired", k)
		}
	}

	stats, _ = m.Stats(ctx)
	if stats != (Stats{Total: 2, Active: 2}) {
		t.Errorf("Stats() after read = %+v", stats)
	}
}

func TestManagerExpiresAtBoundary(t *testing.T) {
	m, clock := newTestManager(0)
	defer m.Close()
	ctx := context.Background()

	_ = m.Set(ctx, "k", []byte("v"), time.Second)
	clock.Advance(time.Second)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("entry still present at its expiry instant")
	}
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	m, clock := newTestManager(3)
	defer m.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = m.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Hour)
		clock.Advance(time.Second)
	}
	// k0 與 k2 被讀過，k1 應被淘汰
	_, _, _ = m.Get(ctx, "k0")
	_, _, _ = m.Get(ctx, "k2")

	_ = m.Set(ctx, "k3", []byte("v"), time.Hour)

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	if _, ok, _ := m.Get(ctx, "k1"); ok {
		t.Error("least used entry k1 was not evicted")
	}
	for _, k := range []string{"k0", "k2", "k3"} {
		if _, ok, _ := m.Get(ctx, k); !ok {
			t.Errorf("entry %s evicted unexpectedly", k)
		}
	}
}

func TestManagerPrefersExpiredOverEviction(t *testing.T) {
	m, clock := newTestManager(2)
	defer m.Close()
	ctx := context.Background()

	_ = m.Set(ctx, "old", []byte("v"), time.Minute)
	_ = m.Set(ctx, "keep", []byte("v"), time.Hour)
	clock.Advance(2 * time.Minute)

	_ = m.Set(ctx, "new", []byte("v"), time.Hour)

	if _, ok, _ := m.Get(ctx, "keep"); !ok {
		t.Error("live entry evicted while an expired one was available")
	}
}

func TestManagerClear(t *testing.T) {
	m, _ := newTestManager(0)
	defer m.Close()
	ctx := context.Background()

	_ = m.Set(ctx, "a", []byte("1"), time.Hour)
	_ = m.Set(ctx, "b", []byte("2"), 0)

	if err := m.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	stats, _ := m.Stats(ctx)
	if stats != (Stats{}) {
		t.Errorf("Stats() after Clear = %+v", stats)
	}
}

func TestManagerCloseStopsJanitor(t *testing.T) {
	m := NewManager(ManagerOptions{CleanupInterval: time.Millisecond})
	_ = m.Set(context.Background(), "k", []byte("v"), time.Millisecond)

	done := make(chan struct{})
	go func() {
		_ = m.Close()
		_ = m.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close() did not return")
	}
}
