package session

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/observability"
)

// MemoryStore keeps sessions in a map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a store whose sessions expire after ttl of
// inactivity. A non-positive ttl selects DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// TTL returns the idle timeout.
func (s *MemoryStore) TTL() time.Duration { return s.ttl }

func (s *MemoryStore) Create(ctx context.Context, mode diagram.Mode) (*Session, error) {
	sess := newSession(mode, s.now())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	observability.Session().OnSessionCreated(ctx, sess.ID, mode.String())
	return sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	now := s.now()
	if sess.idle(now, s.ttl) {
		if s.remove(id) {
			observability.Session().OnSessionsExpired(ctx, 1)
		}
		return nil, ErrNotFound
	}
	sess.touch(now)
	return sess, nil
}

// Delete drops a session on request. It is not counted as an expiry.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if !s.remove(id) {
		return ErrNotFound
	}
	return nil
}

func (s *MemoryStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

func (s *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	now := s.now()

	s.mu.Lock()
	n := 0
	for id, sess := range s.sessions {
		if sess.idle(now, s.ttl) {
			delete(s.sessions, id)
			n++
		}
	}
	s.mu.Unlock()

	if n > 0 {
		observability.Session().OnSessionsExpired(ctx, n)
	}
	return n, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run calls Cleanup every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = s.Cleanup(ctx)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
