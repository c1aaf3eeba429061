// internal/handlers/middleware/ratelimit.go
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/ammerola/reorder-engine/internal/pkg/logger"
)

// DefaultLimiterIdle is how long a client's limiter survives without traffic
const DefaultLimiterIdle = 10 * time.Minute

type rateLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// limiterStore holds one limiter per client and drops the ones idle for
// longer than idle. Sweeps run inline, at most once per idle period.
type limiterStore struct {
	limiters  sync.Map
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep atomic.Int64
	now       func() time.Time
}

func newLimiterStore(requests int, duration, idle time.Duration, now func() time.Time) *limiterStore {
	s := &limiterStore{
		limit: rate.Every(duration / time.Duration(requests)),
		burst: requests,
		idle:  idle,
		now:   now,
	}
	s.lastSweep.Store(now().UnixNano())
	return s
}

func (s *limiterStore) allow(key string) bool {
	now := s.now()
	s.maybeSweep(now)

	val, _ := s.limiters.LoadOrStore(key, &rateLimiter{limiter: rate.NewLimiter(s.limit, s.burst)})
	rl := val.(*rateLimiter)
	rl.lastSeen.Store(now.UnixNano())
	return rl.limiter.AllowN(now, 1)
}

func (s *limiterStore) maybeSweep(now time.Time) {
	last := s.lastSweep.Load()
	if now.UnixNano()-last < int64(s.idle) {
		return
	}
	if !s.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	cutoff := now.Add(-s.idle).UnixNano()
	s.limiters.Range(func(key, value interface{}) bool {
		if value.(*rateLimiter).lastSeen.Load() < cutoff {
			s.limiters.Delete(key)
		}
		return true
	})
}

func (s *limiterStore) size() int {
	n := 0
	s.limiters.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// RateLimit allows requests per duration for each client. Clients are keyed
// by authenticated subject when Auth ran first, else by IP.
func RateLimit(requests int, duration time.Duration) func(http.Handler) http.Handler {
	return rateLimit(newLimiterStore(requests, duration, DefaultLimiterIdle, time.Now), duration)
}

func rateLimit(store *limiterStore, duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := logger.UserIDFromContext(r.Context())
			if key == "" {
				key = "ip:" + getClientIP(r)
			} else {
				key = "sub:" + key
			}

			if !store.allow(key) {
				w.Header().Set("Retry-After", strconv.Itoa(int(duration.Seconds())))
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
