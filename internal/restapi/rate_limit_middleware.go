package restapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/AkhmadOnline/transport-catalogue/internal/clock"
	"github.com/AkhmadOnline/transport-catalogue/internal/logging"
	"github.com/AkhmadOnline/transport-catalogue/internal/models"
)

const (
	anonymousKey       = "__no_key__"
	limiterIdleTimeout = 10 * time.Minute
	limiterSweepPeriod = 5 * time.Minute
)

// keyLimiter is one API key's token bucket and when it was last used, in
// Unix nanoseconds.
type keyLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// RateLimitMiddleware limits requests per API key with a token bucket per
// key. Buckets idle for longer than limiterIdleTimeout are swept.
type RateLimitMiddleware struct {
	mu       sync.RWMutex
	limiters map[string]*keyLimiter

	limit      rate.Limit
	burst      int
	exemptKeys map[string]struct{}
	clock      clock.Clock

	sweep    *time.Ticker
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimitMiddleware allows requestsPerInterval requests per interval and
// API key, with bursts of the same size. A negative rate disables limiting
// and zero rejects everything.
func NewRateLimitMiddleware(requestsPerInterval int, interval time.Duration, exemptKeys []string, c clock.Clock) *RateLimitMiddleware {
	var limit rate.Limit
	switch {
	case requestsPerInterval < 0:
		limit = rate.Inf
	case requestsPerInterval == 0:
		limit = 0
	default:
		limit = rate.Every(interval / time.Duration(requestsPerInterval))
	}

	exempt := make(map[string]struct{}, len(exemptKeys))
	for _, key := range exemptKeys {
		if key = strings.TrimSpace(key); key != "" {
			exempt[key] = struct{}{}
		}
	}

	if c == nil {
		c = clock.RealClock{}
	}

	rl := &RateLimitMiddleware{
		limiters:   make(map[string]*keyLimiter),
		limit:      limit,
		burst:      requestsPerInterval,
		exemptKeys: exempt,
		clock:      c,
		sweep:      time.NewTicker(limiterSweepPeriod),
		stop:       make(chan struct{}),
	}
	go rl.sweepLoop()

	return rl
}

func (rl *RateLimitMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Query().Get("key")
			if key == "" {
				key = anonymousKey
			}

			if _, ok := rl.exemptKeys[key]; !ok && !rl.limiterFor(key).Allow() {
				rl.sendRateLimitExceeded(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// limiterFor returns the bucket of key, creating it on first use.
func (rl *RateLimitMiddleware) limiterFor(key string) *rate.Limiter {
	now := rl.clock.Now().UnixNano()

	rl.mu.RLock()
	kl, ok := rl.limiters[key]
	rl.mu.RUnlock()
	if ok {
		kl.lastSeen.Store(now)
		return kl.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if kl, ok := rl.limiters[key]; ok {
		kl.lastSeen.Store(now)
		return kl.limiter
	}
	kl = &keyLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	kl.lastSeen.Store(now)
	rl.limiters[key] = kl
	return kl.limiter
}

func (rl *RateLimitMiddleware) retryAfter() time.Duration {
	switch rl.limit {
	case 0:
		return time.Hour
	case rate.Inf:
		return time.Second
	}
	wait := time.Duration(float64(time.Second) / float64(rl.limit))
	if wait < time.Second {
		wait = time.Second
	}
	return wait
}

// sendRateLimitExceeded answers 429 in the API envelope.
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(rl.retryAfter().Seconds())))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	response := models.ResponseModel{
		Code:        http.StatusTooManyRequests,
		CurrentTime: models.ResponseCurrentTime(rl.clock),
		Data:        models.EntryData{References: models.NewEmptyReferences()},
		Text:        "Rate limit exceeded. Please try again later.",
		Version:     2,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode rate limit response", err)
	}
}

// sweepOnce evicts buckets of non-exempt keys idle for longer than
// limiterIdleTimeout.
func (rl *RateLimitMiddleware) sweepOnce() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, kl := range rl.limiters {
		if _, ok := rl.exemptKeys[key]; ok {
			continue
		}
		if rl.clock.Since(time.Unix(0, kl.lastSeen.Load())) > limiterIdleTimeout {
			delete(rl.limiters, key)
		}
	}
}

func (rl *RateLimitMiddleware) sweepLoop() {
	for {
		select {
		case <-rl.sweep.C:
			rl.sweepOnce()
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
		rl.sweep.Stop()
	})
}

func (rl *RateLimitMiddleware) trackedKeys() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}
