package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = 10 * time.Minute
	limiterIdleTTL       = 30 * time.Minute
)

type trackedLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// limiterSet hands out one token bucket per key. Stale entries are swept until
// ctx is cancelled so the map does not grow without bound.
type limiterSet[K comparable] struct {
	mu       sync.Mutex
	limiters map[K]*trackedLimiter
	rps      rate.Limit
	burst    int
}

func newLimiterSet[K comparable](ctx context.Context, requestsPerSecond float64, burst int) *limiterSet[K] {
	s := &limiterSet[K]{
		limiters: make(map[K]*trackedLimiter),
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
	}
	go s.sweep(ctx)
	return s
}

func (s *limiterSet[K]) sweep(ctx context.Context) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			cutoff := time.Now().Add(-limiterIdleTTL)
			for k, tl := range s.limiters {
				if tl.lastAccess.Before(cutoff) {
					delete(s.limiters, k)
				}
			}
			s.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (s *limiterSet[K]) allow(key K) bool {
	s.mu.Lock()
	tl, ok := s.limiters[key]
	if !ok {
		tl = &trackedLimiter{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.limiters[key] = tl
	}
	tl.lastAccess = time.Now()
	s.mu.Unlock()

	return tl.limiter.Allow()
}

func tooManyRequests(w http.ResponseWriter) {
	writeProblem(w, http.StatusTooManyRequests, `{"title":"Too Many Requests","status":429,"detail":"rate limit exceeded"}`)
}

// RateLimitByIP applies per-IP rate limiting for unauthenticated endpoints
// (register, login). Mount after chi's RealIP so r.RemoteAddr is the client.
func RateLimitByIP(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	set := newLimiterSet[string](ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !set.allow(clientIP(r)) {
				tooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from r.RemoteAddr so every connection from one
// host shares a bucket. RealIP leaves a bare IP, which is used as is.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit applies per-user rate limiting behind Auth. Requests without a
// user in context pass through untouched.
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	set := newLimiterSet[uuid.UUID](ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if !set.allow(userID) {
				tooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
