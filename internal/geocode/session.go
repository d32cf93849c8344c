package geocode

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultDebounce is how long a session waits for the user to stop typing.
const DefaultDebounce = 300 * time.Millisecond

// ErrSuperseded is returned to a Suggest call that was overtaken by a newer
// call on the same session. Its results, if any, are discarded.
var ErrSuperseded = errors.New("geocode: superseded by a newer query")

// Searcher is the upstream lookup a session debounces.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Suggestion, error)
}

// Session serialises the keystroke-driven searches of one input field.
// Every call takes a sequence number and cancels the call before it, so a
// slow response can never replace the results of a newer query.
type Session struct {
	searcher Searcher
	debounce time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	lastUsed time.Time
}

// NewSession constructs a Session. A negative debounce means DefaultDebounce.
func NewSession(s Searcher, debounce time.Duration, logger *slog.Logger) *Session {
	if debounce < 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{searcher: s, debounce: debounce, logger: logger}
}

// Suggest waits out the debounce window and then searches. A fetch failure
// is logged and yields an empty list. If a newer call arrives first, this
// one returns ErrSuperseded.
func (s *Session) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.seq++
	mine := s.seq
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	if len([]rune(strings.TrimSpace(query))) < MinQueryLength {
		return []Suggestion{}, nil
	}

	timer := time.NewTimer(s.debounce)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, s.abandoned(ctx, mine)
	case <-timer.C:
	}

	results, err := s.searcher.Search(ctx, query)
	if !s.isLatest(mine) {
		return nil, ErrSuperseded
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("location search failed, clearing suggestions", "query", query, "error", err)
		return []Suggestion{}, nil
	}
	return results, nil
}

func (s *Session) isLatest(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq == seq
}

// abandoned explains why a call's context ended before it searched.
func (s *Session) abandoned(ctx context.Context, seq uint64) error {
	if !s.isLatest(seq) {
		return ErrSuperseded
	}
	return ctx.Err()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed)
}
