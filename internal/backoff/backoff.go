// Package backoff computes retry and steady-state wait durations for the
// update loop.
package backoff

import (
	"math/rand"
	"time"
)

// Policy is an exponential backoff with a ceiling and a retry budget.
type Policy struct {
	Base       time.Duration // wait unit; attempt n waits Base * 2^n
	Cap        time.Duration // upper bound on any single wait
	MaxRetries int           // consecutive failures tolerated before giving up
}

// Delay returns min(Base * 2^attempt, Cap). Attempts below zero count as zero.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := p.Base
	for i := 0; i < attempt; i++ {
		if p.Cap > 0 && d >= p.Cap {
			return p.Cap
		}
		// Guard against overflow on very large attempt counts.
		if d >= time.Duration(1<<62) {
			break
		}
		d *= 2
	}
	if p.Cap > 0 && d > p.Cap {
		return p.Cap
	}
	return d
}

// Exhausted reports whether attempt consecutive failures use up the budget.
func (p Policy) Exhausted(attempt int) bool {
	return p.MaxRetries > 0 && attempt >= p.MaxRetries
}

// Jitter returns interval shifted by a uniform random offset in
// [-spread, +spread]. The result is never negative.
func Jitter(interval, spread time.Duration) time.Duration {
	return jitterWith(interval, spread, rand.Int63n)
}

func jitterWith(interval, spread time.Duration, int64n func(int64) int64) time.Duration {
	if spread <= 0 {
		return interval
	}
	offset := time.Duration(int64n(int64(2*spread)+1)) - spread
	d := interval + offset
	if d < 0 {
		return 0
	}
	return d
}
