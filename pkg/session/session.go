// Package session holds interactive diagram sessions for the HTTP server.
//
// A session wraps one [presenter.Presenter], so each browser or API client
// gets its own mode and its own drawn connections. Sessions live in memory
// only and expire after an idle TTL; nothing a user draws outlives the
// process.
//
//	store := session.NewMemoryStore(session.DefaultTTL)
//	go store.Run(ctx, time.Minute) // sweeps idle sessions until ctx is done
//
//	sess, _ := store.Create(ctx, diagram.Simple)
//	sess.Presenter.Connect(presenter.Connection{Source: "login", Target: "database"})
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/presenter"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is the idle time after which a session is dropped.
const DefaultTTL = 30 * time.Minute

// Session is one client's view state.
type Session struct {
	ID        string
	Presenter *presenter.Presenter
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func newSession(mode diagram.Mode, now time.Time) *Session {
	p := presenter.New(mode)
	// The server answers with complete data, so there is no loading phase.
	p.MarkReady()
	return &Session{
		ID:        uuid.NewString(),
		Presenter: p,
		CreatedAt: now,
		lastSeen:  now,
	}
}

// LastSeen returns the time of the last access.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idle(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastSeen()) > ttl
}

// Store is a session store.
type Store interface {
	// Create starts a session showing mode.
	Create(ctx context.Context, mode diagram.Mode) (*Session, error)
	// Get returns the session and refreshes its idle timer.
	// Unknown or expired IDs yield ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// Delete removes a session. Unknown IDs yield ErrNotFound.
	Delete(ctx context.Context, id string) error
	// Cleanup drops idle sessions and returns how many were dropped.
	Cleanup(ctx context.Context) (int, error)
	// Len returns the number of live sessions.
	Len() int
}
