package ratelimit

import (
	"context"
	"sync"
	"time"

	"anxonews-server/internal/observability"
)

// Result represents the outcome of a rate limit check
type Result struct {
	Allowed        bool      `json:"allowed"`
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	RetryAfterSecs int       `json:"retry_after_secs,omitempty"`
}

// Service enforces a fixed-window request cap per key (the caller keys by
// source IP). State is in memory only: a restart clears all windows, which
// is acceptable for an anti-abuse throttle where the upstream provider is
// the real gate.
type Service struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	counts map[string]*entry
	logger *observability.Logger
	now    func() time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// pruneThreshold bounds the window map before expired entries are swept.
const pruneThreshold = 1024

// NewService creates a rate limiting service with the given cap per window.
func NewService(limit int, window time.Duration, logger *observability.Logger) *Service {
	return &Service{
		limit:  limit,
		window: window,
		counts: make(map[string]*entry),
		logger: logger,
		now:    time.Now,
	}
}

// WithClock substitutes the time source. Used in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CheckAndConsume checks the key's current window and consumes one request
// from it when allowed.
func (s *Service) CheckAndConsume(ctx context.Context, key string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.counts) > pruneThreshold {
		s.pruneLocked(now)
	}

	e, ok := s.counts[key]
	if !ok || now.After(e.resetAt) {
		s.counts[key] = &entry{count: 1, resetAt: now.Add(s.window)}
		return Result{
			Allowed:   true,
			Limit:     s.limit,
			Remaining: s.limit - 1,
			ResetAt:   now.Add(s.window),
		}
	}

	if e.count >= s.limit {
		retryAfter := int(e.resetAt.Sub(now).Seconds())
		if retryAfter < 0 {
			retryAfter = 0
		}
		return Result{
			Allowed:        false,
			Limit:          s.limit,
			Remaining:      0,
			ResetAt:        e.resetAt,
			RetryAfterSecs: retryAfter,
		}
	}

	e.count++
	return Result{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - e.count,
		ResetAt:   e.resetAt,
	}
}

func (s *Service) pruneLocked(now time.Time) {
	for key, e := range s.counts {
		if now.After(e.resetAt) {
			delete(s.counts, key)
		}
	}
}
