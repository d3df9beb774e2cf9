package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SearchRateLimit is GitHub's authenticated search allowance per minute.
const SearchRateLimit = 30

// Response headers carrying quota state.
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRateReset     = "X-RateLimit-Reset" // Unix seconds
	HeaderRetryAfter    = "Retry-After"       // seconds, secondary limits only
)

// quota is the server's last word on how many requests are left.
type quota struct {
	limit     int
	remaining int // -1 until a response reports it
	reset     time.Time
}

func (q quota) err() *RateLimitError {
	return &RateLimitError{ResetAt: q.reset, Remaining: q.remaining, Limit: q.limit}
}

// RateLimiter paces outgoing searches with a token bucket and refuses to
// send while the server says the quota is spent.
type RateLimiter struct {
	bucket *rate.Limiter
	now    func() time.Time

	mu    sync.Mutex
	quota quota
}

// NewRateLimiter allows requestsPerMinute searches, evenly spaced.
// Non-positive values fall back to SearchRateLimit.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = SearchRateLimit
	}
	every := time.Minute / time.Duration(requestsPerMinute)
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Every(every), 1),
		now:    time.Now,
		quota:  quota{limit: requestsPerMinute, remaining: -1},
	}
}

// Wait returns once a request may go out. A spent quota fails at once with
// a *RateLimitError; otherwise it waits on the bucket until ctx ends.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.Exhausted(); err != nil {
		return err
	}
	return r.bucket.Wait(ctx)
}

// Exhausted returns a *RateLimitError while the last response reported zero
// remaining requests and the reset time is still ahead.
func (r *RateLimiter) Exhausted() error {
	q := r.snapshot()
	if q.remaining != 0 || !r.now().Before(q.reset) {
		return nil
	}
	return q.err()
}

// UpdateFromResponse records the quota headers of resp. Missing or
// malformed headers leave the previous values in place.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	h := resp.Header

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := headerInt(h, HeaderRateLimit); ok {
		r.quota.limit = v
	}
	if v, ok := headerInt(h, HeaderRateRemaining); ok {
		r.quota.remaining = v
	}
	if v, ok := headerInt(h, HeaderRateReset); ok {
		r.quota.reset = time.Unix(int64(v), 0)
	}
	if v, ok := headerInt(h, HeaderRetryAfter); ok {
		r.quota.remaining = 0
		r.quota.reset = r.now().Add(time.Duration(v) * time.Second)
	}
}

func headerInt(h http.Header, name string) (int, bool) {
	raw := h.Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

// LimitError describes the current quota as a *RateLimitError.
func (r *RateLimiter) LimitError() *RateLimitError {
	return r.snapshot().err()
}

func (r *RateLimiter) snapshot() quota {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota
}

// Remaining is the last reported remaining count, -1 if none yet.
func (r *RateLimiter) Remaining() int { return r.snapshot().remaining }

func (r *RateLimiter) Limit() int { return r.snapshot().limit }

func (r *RateLimiter) ResetTime() time.Time { return r.snapshot().reset }
