package middleware

import (
	"net/http"
	"sync"
	"time"

	"bookline/pkg/logger"
)

type EmailExtractor func(r *http.Request) string

// DefaultEmailExtractor pulls the customer email from the email query
// parameter, falling back to the X-Customer-Email header. Requests without
// either are not rate limited.
func DefaultEmailExtractor(r *http.Request) string {
	if email := r.URL.Query().Get("email"); email != "" {
		return email
	}
	return r.Header.Get("X-Customer-Email")
}

type EmailRateLimiter struct {
	mu             sync.RWMutex
	requests       map[string][]time.Time
	limit          int
	window         time.Duration
	emailExtractor EmailExtractor
	log            *logger.Logger
	stopCh         chan struct{}
}

func NewEmailRateLimiter(limit int, window time.Duration, extractor EmailExtractor, log *logger.Logger) *EmailRateLimiter {
	limiter := &EmailRateLimiter{
		requests:       make(map[string][]time.Time),
		limit:          limit,
		window:         window,
		emailExtractor: extractor,
		log:            log,
		stopCh:         make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *EmailRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for email, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, email)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *EmailRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *EmailRateLimiter) Allow(email string) bool {
	if email == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := make([]time.Time, 0, len(rl.requests[email]))
	for _, ts := range rl.requests[email] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[email] = valid
		return false
	}

	rl.requests[email] = append(valid, now)
	return true
}

func EmailRateLimit(limiter *EmailRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := limiter.emailExtractor(r)

			if !limiter.Allow(email) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
