package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a sliding-window counter keyed by client address. It guards
// the webhook ingress path only; general API traffic is not limited.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window

	windowLen time.Duration
	max       int
	now       func() time.Time
}

func New(windowLen time.Duration, max int) *Limiter {
	return &Limiter{
		windows:   make(map[string]*window),
		windowLen: windowLen,
		max:       max,
		now:       time.Now,
	}
}

// Allow admits or rejects one call for the given key. On rejection the
// returned duration is the remaining window time, for Retry-After.
//
// Expired windows across all keys are swept on each call, so abandoned
// keys do not accumulate.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	for k, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, k)
		}
	}

	w, ok := l.windows[key]
	if !ok {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.windowLen)}
		return true, 0
	}

	w.count++
	if w.count <= l.max {
		return true, 0
	}
	return false, w.resetAt.Sub(now)
}
