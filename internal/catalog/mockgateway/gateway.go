package mockgateway

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/pkg/config"
)

// Latencies are the simulated per-operation delays.
type Latencies struct {
	Products       time.Duration
	ProductByID    time.Duration
	Search         time.Duration
	Banners        time.Duration
	PaymentMethods time.Duration
	PlaceOrder     time.Duration
}

func LatenciesFromConfig(cfg config.GatewayConfig) Latencies {
	return Latencies{
		Products:       cfg.ProductsLatency,
		ProductByID:    cfg.ProductByIDLatency,
		Search:         cfg.SearchLatency,
		Banners:        cfg.BannersLatency,
		PaymentMethods: cfg.PaymentMethodsLatency,
		PlaceOrder:     cfg.PlaceOrderLatency,
	}
}

func (l Latencies) forOperation(op catalog.Operation) time.Duration {
	switch op {
	case catalog.OpFetchAllProducts:
		return l.Products
	case catalog.OpFetchProductByID:
		return l.ProductByID
	case catalog.OpSearchProducts:
		return l.Search
	case catalog.OpFetchBanners:
		return l.Banners
	case catalog.OpFetchPaymentMethods:
		return l.PaymentMethods
	case catalog.OpPlaceOrder:
		return l.PlaceOrder
	}
	return 0
}

// Gateway is an in-memory catalog backend that answers after a fixed delay.
type Gateway struct {
	latencies Latencies
	products  []catalog.Product
	banners   []catalog.Banner
	methods   []catalog.PaymentMethod
	now       func() time.Time

	mu     sync.RWMutex
	faults map[catalog.Operation]error
	orders []catalog.OrderRequest
}

type Option func(*Gateway)

func WithProducts(products []catalog.Product) Option {
	return func(g *Gateway) { g.products = products }
}

func WithBanners(banners []catalog.Banner) Option {
	return func(g *Gateway) { g.banners = banners }
}

func WithPaymentMethods(methods []catalog.PaymentMethod) Option {
	return func(g *Gateway) { g.methods = methods }
}

func WithNow(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// New builds a gateway over the seeded demo catalog unless options override it.
func New(latencies Latencies, opts ...Option) *Gateway {
	g := &Gateway{
		latencies: latencies,
		products:  SeedProducts(),
		banners:   SeedBanners(),
		methods:   SeedPaymentMethods(),
		now:       time.Now,
		faults:    map[catalog.Operation]error{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetFault makes every later call of op fail with err. A nil err clears it.
func (g *Gateway) SetFault(op catalog.Operation, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.faults, op)
		return
	}
	g.faults[op] = err
}

// Orders returns the order requests accepted so far.
func (g *Gateway) Orders() []catalog.OrderRequest {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]catalog.OrderRequest(nil), g.orders...)
}

func (g *Gateway) FetchAllProducts(ctx context.Context) ([]catalog.Product, error) {
	if err := g.wait(ctx, catalog.OpFetchAllProducts); err != nil {
		return nil, err
	}
	return append([]catalog.Product(nil), g.products...), nil
}

func (g *Gateway) FetchProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	if err := g.wait(ctx, catalog.OpFetchProductByID); err != nil {
		return nil, err
	}
	for _, p := range g.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, catalog.ErrProductNotFound(id)
}

func (g *Gateway) SearchProducts(ctx context.Context, text string) ([]catalog.Product, error) {
	if err := g.wait(ctx, catalog.OpSearchProducts); err != nil {
		return nil, err
	}
	query := catalog.NormalizeQuery(text)
	matches := make([]catalog.Product, 0, len(g.products))
	for _, p := range g.products {
		if catalog.MatchesQuery(p, query) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (g *Gateway) FetchBanners(ctx context.Context) ([]catalog.Banner, error) {
	if err := g.wait(ctx, catalog.OpFetchBanners); err != nil {
		return nil, err
	}
	return append([]catalog.Banner(nil), g.banners...), nil
}

func (g *Gateway) FetchPaymentMethods(ctx context.Context) ([]catalog.PaymentMethod, error) {
	if err := g.wait(ctx, catalog.OpFetchPaymentMethods); err != nil {
		return nil, err
	}
	return append([]catalog.PaymentMethod(nil), g.methods...), nil
}

func (g *Gateway) PlaceOrder(ctx context.Context, req catalog.OrderRequest) (*catalog.OrderConfirmation, error) {
	if err := g.wait(ctx, catalog.OpPlaceOrder); err != nil {
		return nil, err
	}
	g.mu.Lock()
	g.orders = append(g.orders, req)
	g.mu.Unlock()
	return &catalog.OrderConfirmation{
		OrderID:  "ORD-" + uuid.NewString(),
		PlacedAt: g.now().UTC(),
	}, nil
}

func (g *Gateway) wait(ctx context.Context, op catalog.Operation) error {
	if delay := g.latencies.forOperation(op); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return catalog.AsFailure(op, ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return catalog.AsFailure(op, err)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.faults[op]
}
