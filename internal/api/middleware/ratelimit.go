package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rahulverma/legalclarity/internal/cache"
)

const windowSeconds = 60

type visitor struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter throttles per client IP. When Redis is available it uses a
// fixed one-minute window shared across instances; otherwise it degrades to
// a local token bucket.
type RateLimiter struct {
	cache *cache.Cache // nil when Redis is unavailable

	mu       sync.Mutex
	visitors map[string]*visitor
	rate     float64 // tokens per second
	burst    float64 // max tokens
}

func NewRateLimiter(c *cache.Cache, rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		cache:    c,
		visitors: make(map[string]*visitor),
		rate:     rps,
		burst:    float64(burst),
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr

		if rl.cache != nil {
			window := time.Now().Unix() / windowSeconds
			key := fmt.Sprintf("ratelimit:%s:%d", ip, window)
			n, err := rl.cache.IncrementWindow(r.Context(), key, windowSeconds*time.Second)
			if err == nil {
				if n > int64(rl.rate*windowSeconds)+int64(rl.burst) {
					writeLimited(w)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			// Redis hiccup: fall through to the local bucket.
		}

		if !rl.allowLocal(ip) {
			writeLimited(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allowLocal(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{tokens: rl.burst, lastSeen: time.Now()}
		rl.visitors[ip] = v
	}

	elapsed := time.Since(v.lastSeen).Seconds()
	v.tokens += elapsed * rl.rate
	if v.tokens > rl.burst {
		v.tokens = rl.burst
	}
	v.lastSeen = time.Now()

	if v.tokens < 1 {
		return false
	}
	v.tokens--
	return true
}

func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func writeLimited(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
}
