package ratelimiter

import (
	"sync"
	"time"

	"github.com/SeakMengs/RenovaSite/internal/config"
	"go.uber.org/zap"
)

type window struct {
	start time.Time
	count int
}

// FixedWindowRateLimiter counts requests per key inside fixed windows of cfg.TimeFrame.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	frame   time.Duration
	enabled bool
	logger  *zap.SugaredLogger

	// swapped in tests
	now func() time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	frame := cfg.TimeFrame
	if frame <= 0 {
		frame = time.Minute
	}

	return &FixedWindowRateLimiter{
		windows: make(map[string]*window),
		limit:   cfg.RequestsPerTimeFrame,
		frame:   frame,
		enabled: cfg.Enabled,
		logger:  logger,
		now:     time.Now,
	}
}

// Allow records one request for key. When the limit is reached it returns false and how long
// until the current window closes.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	if !rl.enabled || rl.limit <= 0 {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.frame {
		rl.windows[key] = &window{start: now, count: 1}
		rl.evictExpired(now)
		return true, 0
	}

	if w.count >= rl.limit {
		retryAfter := w.start.Add(rl.frame).Sub(now)
		rl.logger.Debugf("Rate limit reached for %s, retry after %s", key, retryAfter)
		return false, retryAfter
	}

	w.count++
	return true, 0
}

// caller holds mu
func (rl *FixedWindowRateLimiter) evictExpired(now time.Time) {
	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.frame {
			delete(rl.windows, key)
		}
	}
}
