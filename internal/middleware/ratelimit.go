package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"secure-petstore/internal/platform/apperr"
	"secure-petstore/internal/platform/logger"
	"secure-petstore/internal/response"
)

const msgTooManyRequests = "Too many requests from this IP, please try again later."

// limitCounter lo implementa platform/metrics.
type limitCounter interface {
	RateLimited(scope string)
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limita requests por IP con un token bucket por cliente.
type RateLimiter struct {
	scope    string
	rate     rate.Limit
	burst    int
	counter  limitCounter
	now      func() time.Time
	mu       sync.Mutex
	limiters map[string]*limiterEntry
}

// NewRateLimiter crea un limiter de rps requests por segundo con ráfagas de burst.
// counter puede ser nil.
func NewRateLimiter(scope string, rps float64, burst int, counter limitCounter) *RateLimiter {
	return &RateLimiter{
		scope:    scope,
		rate:     rate.Limit(rps),
		burst:    burst,
		counter:  counter,
		now:      time.Now,
		limiters: make(map[string]*limiterEntry),
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, exists := rl.limiters[key]
	if !exists {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = e
	}
	e.lastSeen = rl.now()
	return e.limiter
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		if !rl.getLimiter(key).AllowN(rl.now(), 1) {
			if rl.counter != nil {
				rl.counter.RateLimited(rl.scope)
			}
			logger.FromContext(r.Context()).Warn("rate limit exceeded", map[string]any{
				"scope":  rl.scope,
				"ip":     key,
				"path":   r.URL.Path,
				"method": r.Method,
			})

			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter()))
			response.Error(w, r, apperr.RateLimited(msgTooManyRequests))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// retryAfter: segundos hasta que se repone un token.
func (rl *RateLimiter) retryAfter() int {
	if rl.rate <= 0 {
		return 60
	}
	return int(math.Max(1, math.Ceil(1/float64(rl.rate))))
}

// Cleanup elimina limiters sin uso desde hace más de idle.
func (rl *RateLimiter) Cleanup(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	for k, e := range rl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(rl.limiters, k)
		}
	}
}

// StartCleanup corre Cleanup periódicamente hasta que se cierre stop.
func (rl *RateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Cleanup(interval)
			case <-stop:
				return
			}
		}
	}()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
