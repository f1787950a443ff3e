package catalog

import (
	"context"
	"time"

	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
	"github.com/angelmondragon/shopstate/pkg/logger"
	"github.com/angelmondragon/shopstate/pkg/metrics"
)

// InstrumentedGateway records latency/outcome metrics for every call, normalizes
// failures with AsFailure and drops products that fail validation.
type InstrumentedGateway struct {
	inner   Gateway
	logg    *logger.Logger
	metrics *metrics.GatewayMetrics
	now     func() time.Time
}

func NewInstrumentedGateway(inner Gateway, logg *logger.Logger, m *metrics.GatewayMetrics) *InstrumentedGateway {
	return &InstrumentedGateway{inner: inner, logg: logg, metrics: m, now: time.Now}
}

func (g *InstrumentedGateway) FetchAllProducts(ctx context.Context) ([]Product, error) {
	products, err := observe(ctx, g, OpFetchAllProducts, g.inner.FetchAllProducts)
	if err != nil {
		return nil, err
	}
	return g.filterInvalid(ctx, OpFetchAllProducts, products), nil
}

func (g *InstrumentedGateway) FetchProductByID(ctx context.Context, id string) (*Product, error) {
	product, err := observe(ctx, g, OpFetchProductByID, func(ctx context.Context) (*Product, error) {
		return g.inner.FetchProductByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound(id)
	}
	if err := ValidateProduct(*product); err != nil {
		return nil, err
	}
	return product, nil
}

func (g *InstrumentedGateway) SearchProducts(ctx context.Context, text string) ([]Product, error) {
	products, err := observe(ctx, g, OpSearchProducts, func(ctx context.Context) ([]Product, error) {
		return g.inner.SearchProducts(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return g.filterInvalid(ctx, OpSearchProducts, products), nil
}

func (g *InstrumentedGateway) FetchBanners(ctx context.Context) ([]Banner, error) {
	return observe(ctx, g, OpFetchBanners, g.inner.FetchBanners)
}

func (g *InstrumentedGateway) FetchPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	return observe(ctx, g, OpFetchPaymentMethods, g.inner.FetchPaymentMethods)
}

func (g *InstrumentedGateway) PlaceOrder(ctx context.Context, req OrderRequest) (*OrderConfirmation, error) {
	return observe(ctx, g, OpPlaceOrder, func(ctx context.Context) (*OrderConfirmation, error) {
		return g.inner.PlaceOrder(ctx, req)
	})
}

// InvalidateCatalog forwards to the inner gateway when it caches catalog lists.
func (g *InstrumentedGateway) InvalidateCatalog(ctx context.Context) error {
	inv, ok := g.inner.(CatalogInvalidator)
	if !ok {
		return nil
	}
	return inv.InvalidateCatalog(ctx)
}

func (g *InstrumentedGateway) filterInvalid(ctx context.Context, op Operation, products []Product) []Product {
	valid, rejected := ValidateProducts(products)
	if len(rejected) > 0 {
		g.logg.Warn(g.logg.WithFields(ctx, map[string]any{
			"operation":    string(op),
			"rejected_ids": rejected,
		}), "catalog.products.invalid_dropped")
	}
	return valid
}

func observe[T any](ctx context.Context, g *InstrumentedGateway, op Operation, call func(context.Context) (T, error)) (T, error) {
	start := g.now()
	value, err := call(ctx)
	g.metrics.ObserveDuration(string(op), g.now().Sub(start))
	if err != nil {
		err = AsFailure(op, err)
		code := pkgerrors.CodeOf(err)
		g.metrics.IncFailure(string(op), string(code))
		if code != pkgerrors.CodeNotFound {
			g.logg.Error(g.logg.WithField(ctx, "operation", string(op)), "catalog.gateway.failed", err)
		}
		var zero T
		return zero, err
	}
	g.metrics.IncSuccess(string(op))
	return value, nil
}
