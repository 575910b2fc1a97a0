package server

import (
	"sync"
	"time"
)

// tokenBucket rate-limits a session's inputs. It is a small struct we
// own outright rather than golang.org/x/time/rate, which makes the
// exact refill/capacity contract easier to pin down and test.
type tokenBucket struct {
	mu           sync.Mutex
	tokens       float64
	capacity     float64
	refillPerSec float64
	last         time.Time
}

func newTokenBucket(capacity, refillPerSec float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		tokens:       capacity,
		capacity:     capacity,
		refillPerSec: refillPerSec,
		last:         now,
	}
}

// Allow refills the bucket for the elapsed time since the last call, then
// consumes a single token if one is available.
func (b *tokenBucket) Allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.last); elapsed > 0 {
		b.tokens += elapsed.Seconds() * b.refillPerSec
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.last = now
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
