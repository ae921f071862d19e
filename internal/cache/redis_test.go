package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SeakMengs/RenovaSite/internal/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedSettings struct {
	CompanyName string   `json:"companyName"`
	Services    []string `json:"services"`
}

func newTestCache(t *testing.T) (*JSONCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewJSONCache(rdb), mr
}

func TestJSONCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	var got cachedSettings
	found, err := c.Get(ctx, "site_settings:main", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := cachedSettings{CompanyName: "Reformas Sur", Services: []string{"Cocinas", "Baños"}}
	require.NoError(t, c.Set(ctx, "site_settings:main", want, time.Minute))

	found, err = c.Get(ctx, "site_settings:main", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, "site_settings:main", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestJSONCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	require.NoError(t, c.Set(ctx, "k", cachedSettings{CompanyName: "x"}, 0))
	require.NoError(t, c.Delete(ctx, "k"))

	var got cachedSettings
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestJSONCacheDisabled(t *testing.T) {
	ctx := context.Background()
	c := NewJSONCache(nil)

	assert.False(t, c.Enabled())
	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	found, err := c.Get(ctx, "k", new(int))
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestOpenWithoutAddress(t *testing.T) {
	rdb, err := Open(context.Background(), config.RedisConfig{})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}
