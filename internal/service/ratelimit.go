package service

import (
	"log"
	"sync"
	"time"
)

// SlidingWindowLimiter bounds outbound provider calls to maxRequests
// per rolling window. When the window is full, Wait blocks until the
// oldest recorded call leaves the window (backpressure, not rejection).
type SlidingWindowLimiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	requests    []time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewSlidingWindowLimiter creates a limiter over a 60-second window.
func NewSlidingWindowLimiter(maxRequestsPerMinute int) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		maxRequests: maxRequestsPerMinute,
		window:      60 * time.Second,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Wait blocks until a request slot is available, then records the call.
func (l *SlidingWindowLimiter) Wait() {
	for {
		l.mu.Lock()
		now := l.now()
		l.prune(now)

		if len(l.requests) < l.maxRequests {
			l.requests = append(l.requests, now)
			l.mu.Unlock()
			return
		}

		oldest := l.requests[0]
		waitTime := l.window - now.Sub(oldest)
		l.mu.Unlock()

		if waitTime <= 0 {
			continue
		}
		log.Printf("[RateLimiter] Rate limit reached, waiting %.2fs", waitTime.Seconds())
		l.sleep(waitTime)
	}
}

// prune drops timestamps that have left the window. Caller holds mu.
// requests stays ordered oldest-first, so the first survivor is the
// next to expire.
func (l *SlidingWindowLimiter) prune(now time.Time) {
	kept := l.requests[:0]
	for _, t := range l.requests {
		if now.Sub(t) < l.window {
			kept = append(kept, t)
		}
	}
	l.requests = kept
}

// Pending returns the number of calls currently inside the window.
func (l *SlidingWindowLimiter) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(l.now())
	return len(l.requests)
}
