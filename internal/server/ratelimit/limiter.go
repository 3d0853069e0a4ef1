// Implements a thread-safe fixed window rate limiter.

// Package ratelimit implements fixed window rate limiting for HTTP handlers.
package ratelimit

import (
	"sync"
	"time"
)

// staleAfter is how long an idle window is kept before cleanup drops it.
const staleAfter = 10 * time.Minute

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int           // requests per window
	Remaining  int           // requests left in current window
	ResetAt    time.Time     // when the current window ends
	RetryAfter time.Duration // how long to wait before retrying (0 if allowed)
}

// Limiter counts requests per key in fixed windows.
//
// A key's window starts with its first request and lasts for the window
// duration; the first request after that starts a new one. Up to twice the
// limit can therefore pass around a window boundary.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type window struct {
	count int
	start time.Time
}

// NewLimiter creates a rate limiter allowing limit requests per window.
// limit <= 0 allows everything.
func NewLimiter(limit int, windowLen time.Duration) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		window:  windowLen,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow records a request for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) Result {
	now := l.now()
	if l.limit <= 0 {
		return Result{Allowed: true, Limit: l.limit, ResetAt: now}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[key]
	// A clock that went backwards also starts a new window.
	if !ok || now.Sub(w.start) >= l.window || now.Before(w.start) {
		w = &window{count: 1, start: now}
		l.windows[key] = w
		return Result{Allowed: true, Limit: l.limit, Remaining: l.limit - 1, ResetAt: now.Add(l.window)}
	}
	w.count++
	resetAt := w.start.Add(l.window)
	if w.count > l.limit {
		// Denied requests are not counted against the next window.
		w.count = l.limit + 1
		return Result{Limit: l.limit, ResetAt: resetAt, RetryAfter: resetAt.Sub(now)}
	}
	return Result{Allowed: true, Limit: l.limit, Remaining: l.limit - w.count, ResetAt: resetAt}
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// cleanupLoop removes stale windows every 10 minutes.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(staleAfter)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup removes windows that ended more than staleAfter ago.
func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	threshold := l.now().Add(-staleAfter - l.window)
	for key, w := range l.windows {
		if w.start.Before(threshold) {
			delete(l.windows, key)
		}
	}
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}
