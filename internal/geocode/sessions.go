package geocode

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 10 * time.Minute

// Sessions hands out one Session per client-supplied id and forgets the
// ones that have been idle longer than the TTL.
type Sessions struct {
	searcher Searcher
	debounce time.Duration
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// SessionsOption customises a Sessions registry.
type SessionsOption func(*Sessions)

// WithClock replaces time.Now for idle-expiry decisions.
func WithClock(now func() time.Time) SessionsOption {
	return func(r *Sessions) { r.now = now }
}

// NewSessions constructs an empty registry.
func NewSessions(s Searcher, debounce, ttl time.Duration, logger *slog.Logger, opts ...SessionsOption) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Sessions{
		searcher: s,
		debounce: debounce,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Suggest runs query on the session named id. An empty id gets a fresh,
// unshared session, so it is never superseded.
func (r *Sessions) Suggest(ctx context.Context, id, query string) ([]Suggestion, error) {
	return r.session(id).Suggest(ctx, query)
}

// Len reports the number of live sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Sessions) session(id string) *Session {
	now := r.now()
	if id == "" {
		return NewSession(r.searcher, r.debounce, r.logger)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, s := range r.sessions {
		if key != id && s.idleSince(now) > r.ttl {
			delete(r.sessions, key)
		}
	}

	s, ok := r.sessions[id]
	if !ok {
		s = NewSession(r.searcher, r.debounce, r.logger)
		r.sessions[id] = s
	}
	s.touch(now)
	return s
}
