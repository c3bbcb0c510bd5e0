package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_AdmitsUpToCap(t *testing.T) {
	l := New(time.Minute, 10)

	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("1.2.3.4")
		assert.True(t, ok, "call %d", i+1)
	}

	ok, retryAfter := l.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)
}

func TestLimiter_WindowElapsesAndResets(t *testing.T) {
	l := New(time.Minute, 10)
	base := time.Now()
	l.now = func() time.Time { return base }

	for i := 0; i < 11; i++ {
		l.Allow("1.2.3.4")
	}
	ok, _ := l.Allow("1.2.3.4")
	assert.False(t, ok)

	// 61s later the window has elapsed; the counter starts fresh.
	l.now = func() time.Time { return base.Add(61 * time.Second) }
	ok, _ = l.Allow("1.2.3.4")
	assert.True(t, ok)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New(time.Minute, 10)

	for i := 0; i < 11; i++ {
		l.Allow("1.2.3.4")
	}

	ok, _ := l.Allow("5.6.7.8")
	assert.True(t, ok)
}

func TestLimiter_LazyGCDropsExpiredWindows(t *testing.T) {
	l := New(time.Minute, 10)
	base := time.Now()
	l.now = func() time.Time { return base }

	for i := 0; i < 50; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	assert.Len(t, l.windows, 50)

	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	l.Allow("fresh")
	assert.Len(t, l.windows, 1)
}

func TestLimiter_RetryAfterShrinksWithinWindow(t *testing.T) {
	l := New(time.Minute, 1)
	base := time.Now()
	l.now = func() time.Time { return base }

	l.Allow("1.2.3.4")

	l.now = func() time.Time { return base.Add(45 * time.Second) }
	ok, retryAfter := l.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, 15*time.Second, retryAfter)
}
