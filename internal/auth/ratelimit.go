package auth

import (
	"sync"
	"time"
)

const (
	// rateLimitWindow is the sliding window over which requests are counted.
	rateLimitWindow = 60 * time.Second
	// rateLimitMax is the number of requests a user may make per window.
	rateLimitMax = 10
)

// RateLimiter enforces a per-user sliding-window request limit. Admins are
// exempt; see Allow.
type RateLimiter struct {
	policy *PolicyService

	mu       sync.Mutex
	requests map[int64][]time.Time
	now      func() time.Time
}

// NewRateLimiter creates a RateLimiter backed by the given policy.
func NewRateLimiter(policy *PolicyService) *RateLimiter {
	return &RateLimiter{
		policy:   policy,
		requests: make(map[int64][]time.Time),
		now:      time.Now,
	}
}

// Allow records a request attempt and reports whether it is within the
// user's budget. Admins always pass and are not recorded.
func (r *RateLimiter) Allow(userID int64) bool {
	if r.policy != nil && r.policy.IsAdmin(userID) {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-rateLimitWindow)

	// Drop timestamps that have aged out of the window.
	recent := r.requests[userID][:0]
	for _, ts := range r.requests[userID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= rateLimitMax {
		r.requests[userID] = recent
		return false
	}

	r.requests[userID] = append(recent, now)
	return true
}
