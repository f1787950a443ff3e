package catalog

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
	"github.com/angelmondragon/shopstate/pkg/logger"
	"github.com/angelmondragon/shopstate/pkg/metrics"
	"github.com/angelmondragon/shopstate/pkg/redis"
)

const defaultCacheLoadTimeout = 10 * time.Second

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CatalogKey(parts ...string) string
}

// CachedParams groups dependencies for the read-through cache decorator.
type CachedParams struct {
	Inner   Gateway
	Cache   cacheStore
	TTL     time.Duration
	// LoadTimeout bounds a shared miss load, which runs detached from the
	// caller that started it. Defaults to 10s.
	LoadTimeout time.Duration
	Logger      *logger.Logger
	Metrics     *metrics.GatewayMetrics
}

// CachedGateway serves list reads (products, search, banners, payment methods)
// from Redis and collapses concurrent misses for one key. Product lookups by id
// and orders always reach the inner gateway.
type CachedGateway struct {
	inner       Gateway
	cache       cacheStore
	ttl         time.Duration
	loadTimeout time.Duration
	logg        *logger.Logger
	metrics     *metrics.GatewayMetrics
	group       singleflight.Group
}

func NewCachedGateway(params CachedParams) (*CachedGateway, error) {
	if params.Inner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "inner gateway required")
	}
	if params.Cache == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cache store required")
	}
	if params.TTL <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cache ttl must be positive")
	}
	if params.LoadTimeout <= 0 {
		params.LoadTimeout = defaultCacheLoadTimeout
	}
	return &CachedGateway{
		inner:       params.Inner,
		cache:       params.Cache,
		ttl:         params.TTL,
		loadTimeout: params.LoadTimeout,
		logg:        params.Logger,
		metrics:     params.Metrics,
	}, nil
}

func (g *CachedGateway) FetchAllProducts(ctx context.Context) ([]Product, error) {
	return readThrough(ctx, g, OpFetchAllProducts, g.cache.CatalogKey("products"), g.inner.FetchAllProducts)
}

func (g *CachedGateway) FetchProductByID(ctx context.Context, id string) (*Product, error) {
	return g.inner.FetchProductByID(ctx, id)
}

func (g *CachedGateway) SearchProducts(ctx context.Context, text string) ([]Product, error) {
	query := NormalizeQuery(text)
	return readThrough(ctx, g, OpSearchProducts, g.cache.CatalogKey("search", query), func(ctx context.Context) ([]Product, error) {
		return g.inner.SearchProducts(ctx, text)
	})
}

func (g *CachedGateway) FetchBanners(ctx context.Context) ([]Banner, error) {
	return readThrough(ctx, g, OpFetchBanners, g.cache.CatalogKey("banners"), g.inner.FetchBanners)
}

func (g *CachedGateway) FetchPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	return readThrough(ctx, g, OpFetchPaymentMethods, g.cache.CatalogKey("payment_methods"), g.inner.FetchPaymentMethods)
}

func (g *CachedGateway) PlaceOrder(ctx context.Context, req OrderRequest) (*OrderConfirmation, error) {
	return g.inner.PlaceOrder(ctx, req)
}

// InvalidateCatalog drops the cached product list, banners and payment methods.
// Search results expire with their TTL.
func (g *CachedGateway) InvalidateCatalog(ctx context.Context) error {
	keys := []string{
		g.cache.CatalogKey("products"),
		g.cache.CatalogKey("banners"),
		g.cache.CatalogKey("payment_methods"),
	}
	if err := g.cache.Del(ctx, keys...); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate catalog cache")
	}
	return nil
}

func readThrough[T any](ctx context.Context, g *CachedGateway, op Operation, key string, load func(context.Context) (T, error)) (T, error) {
	opCtx := g.logg.WithFields(ctx, map[string]any{"operation": string(op), "cache_key": key})

	raw, err := g.cache.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			g.metrics.IncCache(string(op), "hit")
			return cached, nil
		}
		g.metrics.IncCache(string(op), "error")
		g.logg.Warn(opCtx, "catalog.cache.decode_failed")
	case redis.IsMiss(err):
		g.metrics.IncCache(string(op), "miss")
	default:
		g.metrics.IncCache(string(op), "error")
		g.logg.Warn(g.logg.WithField(opCtx, "error", err.Error()), "catalog.cache.read_failed")
	}

	// The shared load is detached from the caller that started it; each caller
	// stops waiting on its own ctx.
	results := g.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.loadTimeout)
		defer cancel()

		loaded, loadErr := load(loadCtx)
		if loadErr != nil {
			return loaded, loadErr
		}
		payload, marshalErr := json.Marshal(loaded)
		if marshalErr != nil {
			g.logg.Warn(g.logg.WithField(opCtx, "error", marshalErr.Error()), "catalog.cache.encode_failed")
			return loaded, nil
		}
		if setErr := g.cache.Set(loadCtx, key, string(payload), g.ttl); setErr != nil {
			g.logg.Warn(g.logg.WithField(opCtx, "error", setErr.Error()), "catalog.cache.write_failed")
		}
		return loaded, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
