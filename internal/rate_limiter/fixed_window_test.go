package ratelimiter

import (
	"testing"
	"time"

	"github.com/SeakMengs/RenovaSite/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestFixedWindowLimit(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true}, nil)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("1.1.1.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("1.1.1.1")
	assert.True(t, ok)

	ok, retry := rl.Allow("1.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	// other clients have their own window
	ok, _ = rl.Allow("2.2.2.2")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, _ = rl.Allow("1.1.1.1")
	assert.True(t, ok)
}

func TestFixedWindowDisabled(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{RequestsPerTimeFrame: 1, TimeFrame: time.Minute, Enabled: false}, nil)

	for i := 0; i < 5; i++ {
		ok, _ := rl.Allow("1.1.1.1")
		assert.True(t, ok)
	}
}
