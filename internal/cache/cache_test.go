package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

func testCacheConfig() config.CacheConfig {
	return config.Default().Cache
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(context.Background(), "k", 42, time.Minute))
	v, ok, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	now = now.Add(2 * time.Minute)
	_, ok, err = m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestSelectionKeyOrderInsensitive(t *testing.T) {
	a := contract.SelectRequest{
		CountryCode: "JP",
		Intent:      contract.DirectionIntent{Preferences: []string{"hiking", "food"}},
	}
	b := contract.SelectRequest{
		CountryCode: "JP",
		Intent:      contract.DirectionIntent{Preferences: []string{"food", "hiking"}},
	}
	ka, err := SelectionKey(a)
	require.NoError(t, err)
	kb, err := SelectionKey(b)
	require.NoError(t, err)
	assert.Equal(t, ka, kb)

	b.CountryCode = "CH"
	kc, err := SelectionKey(b)
	require.NoError(t, err)
	assert.NotEqual(t, ka, kc)
}

func TestPoolKeyDependsOnSignature(t *testing.T) {
	d := &domain.RouteDirection{ID: "rd-1"}
	k1, err := PoolKey(d, 50_000)
	require.NoError(t, err)

	d.SignaturePois.Types = []string{"museum"}
	k2, err := PoolKey(d, 50_000)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	k3, err := PoolKey(d, 25_000)
	require.NoError(t, err)
	assert.NotEqual(t, k2, k3)
}

func TestSelectionCacheRoundTrip(t *testing.T) {
	c := NewSelectionCache(NewMemory(), testCacheConfig(), nil)
	req := contract.SelectRequest{CountryCode: "JP"}
	resp := contract.SelectResponse{
		Recommendations: []contract.Recommendation{{DirectionID: "rd-1", Score: 80}},
	}

	_, ok := c.Get(context.Background(), req)
	assert.False(t, ok)

	c.Put(context.Background(), req, resp)
	got, ok := c.Get(context.Background(), req)
	require.True(t, ok)
	assert.Equal(t, resp, got)
}

type failingBackend struct{}

func (failingBackend) Get(context.Context, string) (any, bool, error) {
	return nil, false, errors.New("backend down")
}

func (failingBackend) Set(context.Context, string, any, time.Duration) error {
	return errors.New("backend down")
}

func TestCacheErrorsAreNonFatal(t *testing.T) {
	sel := NewSelectionCache(failingBackend{}, testCacheConfig(), nil)
	req := contract.SelectRequest{CountryCode: "JP"}

	_, ok := sel.Get(context.Background(), req)
	assert.False(t, ok)
	sel.Put(context.Background(), req, contract.SelectResponse{})

	pool := NewPoolCache(failingBackend{}, testCacheConfig(), nil)
	d := &domain.RouteDirection{ID: "rd-1"}
	_, ok = pool.Get(context.Background(), d, 50_000)
	assert.False(t, ok)
	pool.Put(context.Background(), d, 50_000, nil)
}

func TestPoolCacheRoundTrip(t *testing.T) {
	c := NewPoolCache(NewMemory(), testCacheConfig(), nil)
	d := &domain.RouteDirection{
		ID:            "rd-1",
		SignaturePois: domain.SignaturePois{Types: []string{"museum"}},
	}
	pool := []domain.ActivityCandidate{{UUID: "p1", Name: "Museum"}}

	c.Put(context.Background(), d, 50_000, pool)
	got, ok := c.Get(context.Background(), d, 50_000)
	require.True(t, ok)
	assert.Equal(t, pool, got)
}
