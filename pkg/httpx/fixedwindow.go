package httpx

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/parleychat/parley/pkg/slogx"
)

// FixedWindowConfig describes a wall-clock-aligned fixed window: at most
// Limit requests per key in each Window. Every request counts, success and
// failure alike, so callers cannot probe an OTP via rate-limit timing.
type FixedWindowConfig struct {
	Limit  int
	Window time.Duration
}

// DefaultOTPLimit caps OTP verify + resend traffic at 10 requests per client
// address within each 15-minute window.
var DefaultOTPLimit = FixedWindowConfig{
	Limit:  10,
	Window: 15 * time.Minute,
}

func init() {
	cfg := ParseRateLimitFromEnv("OTP", RateLimitConfig{
		RequestsPerWindow: DefaultOTPLimit.Limit,
		Window:            DefaultOTPLimit.Window,
	})
	DefaultOTPLimit = FixedWindowConfig{Limit: cfg.RequestsPerWindow, Window: cfg.Window}
}

const fixedWindowShards = 16

// FixedWindowLimiter counts requests per key in aligned windows. Counters
// live in a sharded map so concurrent requests for different keys rarely
// contend on the same lock.
type FixedWindowLimiter struct {
	cfg    FixedWindowConfig
	shards [fixedWindowShards]fixedWindowShard
}

type fixedWindowShard struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
}

type windowCounter struct {
	windowStart int64 // unix seconds of the aligned window start
	count       int
}

// NewFixedWindowLimiter builds a limiter for the given config.
func NewFixedWindowLimiter(cfg FixedWindowConfig) *FixedWindowLimiter {
	l := &FixedWindowLimiter{cfg: cfg}
	for i := range l.shards {
		l.shards[i].counters = make(map[string]*windowCounter)
	}
	return l
}

// Allow records a request for key at time now. It reports whether the request
// fits in the current window and, when it does not, how long until the next
// window opens.
func (l *FixedWindowLimiter) Allow(key string, now time.Time) (bool, time.Duration) {
	// Wall-clock aligned, not sliding: all requests in the same quarter-hour
	// share a window regardless of when the first one arrived.
	windowStart := now.Truncate(l.cfg.Window)

	shard := &l.shards[shardFor(key)]
	shard.mu.Lock()
	defer shard.mu.Unlock()

	c, ok := shard.counters[key]
	if !ok || c.windowStart != windowStart.Unix() {
		c = &windowCounter{windowStart: windowStart.Unix()}
		shard.counters[key] = c

		// A window rollover is a cheap moment to drop counters from windows
		// that have already closed.
		l.evictStaleLocked(shard, windowStart.Unix())
	}

	c.count++
	if c.count > l.cfg.Limit {
		return false, windowStart.Add(l.cfg.Window).Sub(now)
	}
	return true, 0
}

func (l *FixedWindowLimiter) evictStaleLocked(shard *fixedWindowShard, currentWindow int64) {
	for key, c := range shard.counters {
		if c.windowStart != currentWindow {
			delete(shard.counters, key)
		}
	}
}

func shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % fixedWindowShards)
}

// FixedWindowByIP rejects requests beyond the window limit with a uniform
// retry-later envelope, regardless of whether earlier requests succeeded.
func FixedWindowByIP(cfg FixedWindowConfig) Middleware {
	limiter := NewFixedWindowLimiter(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := IPKeyExtractor(r)
			ok, retryIn := limiter.Allow(key, time.Now())
			if !ok {
				retryAfter := max(int(retryIn.Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
				w.Header().Set("X-RateLimit-Window", cfg.Window.String())

				log.Warn("otp rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				WriteError(w, http.StatusTooManyRequests,
					"Too many OTP attempts from this address. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
