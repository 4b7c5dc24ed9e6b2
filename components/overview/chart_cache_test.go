package overview

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheGetOrRender(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "<div>chart</div>", nil
	}

	html, err := cache.GetOrRender("trend:a", render)
	require.NoError(t, err)
	assert.Equal(t, "<div>chart</div>", html)

	html, err = cache.GetOrRender("trend:a", render)
	require.NoError(t, err)
	assert.Equal(t, "<div>chart</div>", html)
	assert.Equal(t, 1, calls, "second hit must come from cache")
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(10 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "x", nil
	}
	_, err := cache.GetOrRender("k", render)
	require.NoError(t, err)
	time.Sleep(25 * time.Millisecond)
	_, err = cache.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestChartCacheDoesNotStoreErrors(t *testing.T) {
	cache := NewChartCache(time.Minute)
	wantErr := errors.New("render failed")
	_, err := cache.GetOrRender("bad", func() (string, error) { return "", wantErr })
	require.ErrorIs(t, err, wantErr)

	html, err := cache.GetOrRender("bad", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", html)
}

func TestChartCacheDisabledWithZeroTTL(t *testing.T) {
	cache := NewChartCache(0)
	calls := 0
	render := func() (string, error) {
		calls++
		return "x", nil
	}
	_, _ = cache.GetOrRender("k", render)
	_, _ = cache.GetOrRender("k", render)
	assert.Equal(t, 2, calls)
}

func TestQueryHashChangesWithFilters(t *testing.T) {
	base := Query{Kind: QueryKindTrendSeries, DateRange: DefaultDateRange()}
	withFilter := base
	withFilter.Properties = []PropertyFilter{NewEventFilter("$browser", "Chrome")}
	assert.NotEqual(t, queryHash(base), queryHash(withFilter))
	assert.Equal(t, queryHash(base), queryHash(base))
}
