package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/observability"
	"github.com/matzehuels/archflow/pkg/presenter"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl)
	s.now = clk.now
	return s, clk
}

func TestCreateGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Minute)

	sess, err := s.Create(ctx, diagram.Detailed)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("empty session ID")
	}
	if got := sess.Presenter.Mode(); got != diagram.Detailed {
		t.Errorf("mode = %s, want detailed", got)
	}
	if !sess.Presenter.Ready() {
		t.Error("server sessions should be ready")
	}

	got, err := s.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != sess {
		t.Error("Get returned a different session")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Minute)

	a, _ := s.Create(ctx, diagram.Simple)
	b, _ := s.Create(ctx, diagram.Simple)
	if a.ID == b.ID {
		t.Fatal("duplicate session IDs")
	}

	if _, _, err := a.Presenter.Connect(presenter.Connection{Source: "login", Target: "database"}); err != nil {
		t.Fatal(err)
	}
	if got := b.Presenter.Snapshot().UserEdges; got != 0 {
		t.Errorf("second session has %d user edges", got)
	}
}

func TestGetUnknown(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestIdleExpiry(t *testing.T) {
	ctx := context.Background()
	s, clk := newTestStore(time.Minute)
	sess, _ := s.Create(ctx, diagram.Simple)

	clk.advance(50 * time.Second)
	if _, err := s.Get(ctx, sess.ID); err != nil {
		t.Fatalf("Get before TTL: %v", err)
	}

	// Get refreshed the timer.
	clk.advance(50 * time.Second)
	if _, err := s.Get(ctx, sess.ID); err != nil {
		t.Fatalf("Get after refresh: %v", err)
	}

	clk.advance(2 * time.Minute)
	if _, err := s.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if s.Len() != 0 {
		t.Errorf("expired session still stored")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Minute)
	sess, _ := s.Create(ctx, diagram.Simple)

	if err := s.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete err = %v, want ErrNotFound", err)
	}
}

// expiryCounter counts OnSessionsExpired events.
type expiryCounter struct {
	observability.NoopSessionHooks
	mu      sync.Mutex
	expired int
}

func (c *expiryCounter) OnSessionsExpired(_ context.Context, n int) {
	c.mu.Lock()
	c.expired += n
	c.mu.Unlock()
}

func (c *expiryCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

func TestExpiryHook(t *testing.T) {
	hooks := &expiryCounter{}
	observability.SetSessionHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s, clk := newTestStore(time.Minute)

	deleted, _ := s.Create(ctx, diagram.Simple)
	if err := s.Delete(ctx, deleted.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := hooks.count(); got != 0 {
		t.Errorf("expired = %d after Delete, want 0", got)
	}

	idle, _ := s.Create(ctx, diagram.Simple)
	_, _ = s.Create(ctx, diagram.Simple)
	clk.advance(2 * time.Minute)
	if _, err := s.Get(ctx, idle.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get idle session err = %v, want ErrNotFound", err)
	}
	if _, err := s.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if got := hooks.count(); got != 2 {
		t.Errorf("expired = %d, want 2", got)
	}
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	s, clk := newTestStore(time.Minute)

	old, _ := s.Create(ctx, diagram.Simple)
	clk.advance(90 * time.Second)
	fresh, _ := s.Create(ctx, diagram.Simple)

	n, err := s.Cleanup(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Cleanup dropped %d, want 1", n)
	}
	if _, err := s.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Error("old session should be gone")
	}
	if _, err := s.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session: %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewMemoryStore(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	_, _ = s.Create(ctx, diagram.Simple)
	time.Sleep(10 * time.Millisecond)
	cancel()
	<-done

	if s.Len() != 0 {
		t.Errorf("Len = %d after sweeping, want 0", s.Len())
	}
}

func TestNewMemoryStoreDefaultTTL(t *testing.T) {
	if got := NewMemoryStore(0).TTL(); got != DefaultTTL {
		t.Errorf("TTL = %v, want %v", got, DefaultTTL)
	}
}
