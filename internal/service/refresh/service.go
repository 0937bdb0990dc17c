package refresh

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Signal tells subscribed views to re-fetch their data.
type Signal struct {
	Reason string
	At     time.Time
}

// Service debounces refresh fan-out and tracks cancellable in-flight list
// fetches. Refresh broadcasts are debounced; mutating actions themselves
// never are.
type Service interface {
	Subscribe() (<-chan Signal, func())
	Broadcast(reason string)
	// BroadcastAfterMutation emits the refresh twice with a short delay
	// between, so views that re-render slowly still pick up the change on
	// the second nudge.
	BroadcastAfterMutation()
	// RegisterInFlight records a cancellable fetch keyed by a URL pattern.
	// The returned release must be called when the fetch completes.
	RegisterInFlight(pattern string, cancel context.CancelFunc) (release func())
	// ForceRefresh cancels in-flight fetches matching the pattern before
	// broadcasting, so a stale response cannot overwrite fresher data.
	ForceRefresh(reason, pattern string)
}

type inflightFetch struct {
	pattern string
	cancel  context.CancelFunc
}

type service struct {
	mu sync.Mutex

	subs   map[int]chan Signal
	nextID int

	debounce time.Duration
	renudge  time.Duration
	lastRun  time.Time
	trailing *time.Timer

	inflight    map[int]inflightFetch
	nextFetchID int

	logger *zap.Logger
}

func NewService(debounce, renudge time.Duration, logger *zap.Logger) Service {
	return &service{
		subs:     make(map[int]chan Signal),
		inflight: make(map[int]inflightFetch),
		debounce: debounce,
		renudge:  renudge,
		logger:   logger,
	}
}

func (s *service) Subscribe() (<-chan Signal, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Signal, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if existing, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(existing)
		}
	}
}

func (s *service) Broadcast(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if since := now.Sub(s.lastRun); since < s.debounce {
		// Collapse into one trailing refresh at the end of the window.
		if s.trailing == nil {
			s.trailing = time.AfterFunc(s.debounce-since, func() {
				s.mu.Lock()
				s.trailing = nil
				s.mu.Unlock()
				s.Broadcast(reason)
			})
		}
		return
	}

	s.lastRun = now
	s.deliverLocked(Signal{Reason: reason, At: now})
}

func (s *service) deliverLocked(sig Signal) {
	for _, ch := range s.subs {
		select {
		case ch <- sig:
		default:
			// Subscriber still has an undelivered signal; one pending
			// refresh is enough.
		}
	}
}

func (s *service) BroadcastAfterMutation() {
	s.Broadcast("mutation")
	time.AfterFunc(s.renudge, func() {
		s.Broadcast("mutation-renudge")
	})
}

func (s *service) RegisterInFlight(pattern string, cancel context.CancelFunc) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextFetchID
	s.nextFetchID++
	s.inflight[id] = inflightFetch{pattern: pattern, cancel: cancel}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.inflight, id)
	}
}

func (s *service) ForceRefresh(reason, pattern string) {
	s.mu.Lock()
	cancelled := 0
	for id, fetch := range s.inflight {
		if strings.Contains(fetch.pattern, pattern) {
			fetch.cancel()
			delete(s.inflight, id)
			cancelled++
		}
	}
	s.mu.Unlock()

	if cancelled > 0 {
		s.logger.Debug("cancelled in-flight fetches before refresh",
			zap.String("pattern", pattern), zap.Int("count", cancelled))
	}
	s.Broadcast(reason)
}
