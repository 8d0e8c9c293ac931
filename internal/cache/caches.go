package cache

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

// SelectionCache memoises direction selection responses. The TTL drops from
// six hours to one when the travel month is unknown, since seasonality then
// contributes a neutral score that goes stale faster.
type SelectionCache struct {
	backend Backend
	cfg     config.CacheConfig
	logger  *slog.Logger
}

func NewSelectionCache(backend Backend, cfg config.CacheConfig, logger *slog.Logger) *SelectionCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &SelectionCache{backend: backend, cfg: cfg, logger: logger}
}

func (c *SelectionCache) Get(ctx context.Context, req contract.SelectRequest) (contract.SelectResponse, bool) {
	key, err := SelectionKey(req)
	if err != nil {
		c.logger.Warn("selection cache key failed", "error", err)
		return contract.SelectResponse{}, false
	}
	v, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		c.logger.Warn("selection cache read failed", "key", key, "error", err)
		return contract.SelectResponse{}, false
	}
	if !ok {
		return contract.SelectResponse{}, false
	}
	resp, ok := v.(contract.SelectResponse)
	return resp, ok
}

func (c *SelectionCache) Put(ctx context.Context, req contract.SelectRequest, resp contract.SelectResponse) {
	key, err := SelectionKey(req)
	if err != nil {
		c.logger.Warn("selection cache key failed", "error", err)
		return
	}
	ttl := c.cfg.SelectionTTLNoMonth
	if req.Month != nil {
		ttl = c.cfg.SelectionTTLWithMonth
	}
	if err := c.backend.Set(ctx, key, resp, ttl); err != nil {
		c.logger.Warn("selection cache write failed", "key", key, "error", err)
	}
}

// PoolCache memoises candidate pools per direction fingerprint. Trivial
// signature sets get the short TTL because their pools are driven entirely by
// region data that ingest refreshes more often.
type PoolCache struct {
	backend Backend
	cfg     config.CacheConfig
	logger  *slog.Logger
}

func NewPoolCache(backend Backend, cfg config.CacheConfig, logger *slog.Logger) *PoolCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &PoolCache{backend: backend, cfg: cfg, logger: logger}
}

func (c *PoolCache) Get(ctx context.Context, d *domain.RouteDirection, bufferMeters float64) ([]domain.ActivityCandidate, bool) {
	key, err := PoolKey(d, bufferMeters)
	if err != nil {
		c.logger.Warn("pool cache key failed", "direction", d.ID, "error", err)
		return nil, false
	}
	v, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		c.logger.Warn("pool cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	pool, ok := v.([]domain.ActivityCandidate)
	return pool, ok
}

func (c *PoolCache) Put(ctx context.Context, d *domain.RouteDirection, bufferMeters float64, pool []domain.ActivityCandidate) {
	key, err := PoolKey(d, bufferMeters)
	if err != nil {
		c.logger.Warn("pool cache key failed", "direction", d.ID, "error", err)
		return
	}
	ttl := c.cfg.PoolTTLSignature
	if d.SignaturePois.Trivial() {
		ttl = c.cfg.PoolTTLTrivial
	}
	if err := c.backend.Set(ctx, key, pool, ttl); err != nil {
		c.logger.Warn("pool cache write failed", "key", key, "error", err)
	}
}
