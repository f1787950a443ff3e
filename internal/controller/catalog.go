package controller

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/internal/store"
	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
)

const (
	msgFetchProducts   = "Failed to fetch products"
	msgFetchBanners    = "Failed to fetch banners"
	msgSearchProducts  = "Failed to search products"
	msgProductNotFound = "Product not found"
	msgFetchProduct    = "Failed to fetch product"
)

type searchRequest struct {
	ctx  context.Context
	text string
}

// LoadCatalog fetches products and banners concurrently and waits for both.
func (c *Controller) LoadCatalog(ctx context.Context) error {
	ctx = c.logg.WithFlow(ctx, "catalog")
	products, banners := c.issueCatalog()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := c.resolveProducts(ctx, products); err != nil {
			mu.Lock()
			errs = multierr.Append(errs, err)
			mu.Unlock()
		}
	}()
	go func() {
		defer wg.Done()
		if err := c.resolveBanners(ctx, banners); err != nil {
			mu.Lock()
			errs = multierr.Append(errs, err)
			mu.Unlock()
		}
	}()
	wg.Wait()
	return errs
}

// Refresh re-issues products and banners without waiting for loads already in
// flight; their late results are discarded by the store. A gateway that caches the
// catalog lists is invalidated first. It returns right after issuing; use Wait to
// block on the outcome.
func (c *Controller) Refresh(ctx context.Context) {
	if c.isClosed() {
		return
	}
	ctx = c.logg.WithFlow(context.WithoutCancel(ctx), "refresh")
	if inv, ok := c.gateway.(catalog.CatalogInvalidator); ok {
		if err := inv.InvalidateCatalog(ctx); err != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "controller.refresh.invalidate_failed")
		}
	}
	products, banners := c.issueCatalog()
	c.goBackground(func() { _ = c.resolveProducts(ctx, products) })
	c.goBackground(func() { _ = c.resolveBanners(ctx, banners) })
}

func (c *Controller) issueCatalog() (store.Ticket, store.Ticket) {
	return c.store.Issue(store.KindProducts), c.store.Issue(store.KindBanners)
}

func (c *Controller) resolveProducts(ctx context.Context, ticket store.Ticket) error {
	return resolve(ctx, c, ticket, fixedMessage(msgFetchProducts), c.gateway.FetchAllProducts, func(seq uint64, products []catalog.Product) store.Action {
		return store.ProductsLoaded{Seq: seq, Products: products}
	})
}

func (c *Controller) resolveBanners(ctx context.Context, ticket store.Ticket) error {
	return resolve(ctx, c, ticket, fixedMessage(msgFetchBanners), c.gateway.FetchBanners, func(seq uint64, banners []catalog.Banner) store.Action {
		return store.BannersLoaded{Seq: seq, Banners: banners}
	})
}

// Search handles one keystroke. A blank query clears the results at once and drops
// any pending search; anything else is debounced before reaching the gateway.
func (c *Controller) Search(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		c.search.CancelPending()
		c.store.ClearProducts()
		return
	}
	c.search.Call(searchRequest{ctx: context.WithoutCancel(ctx), text: text})
}

// startSearch runs when the debounce window closes. The ticket is issued here so
// issuance order follows keystroke order.
func (c *Controller) startSearch(req searchRequest) {
	if c.isClosed() {
		return
	}
	ctx := c.logg.WithFlow(req.ctx, "search")
	ticket := c.store.Issue(store.KindProducts)
	c.goBackground(func() {
		_ = resolve(ctx, c, ticket, fixedMessage(msgSearchProducts), func(ctx context.Context) ([]catalog.Product, error) {
			return c.gateway.SearchProducts(ctx, req.text)
		}, func(seq uint64, products []catalog.Product) store.Action {
			return store.ProductsLoaded{Seq: seq, Products: products}
		})
	})
}

// OpenProduct navigates to the details screen and loads the product.
func (c *Controller) OpenProduct(ctx context.Context, productID string) error {
	c.nav.Navigate(RouteProductDetails, map[string]string{"productId": productID})
	return c.SelectProduct(ctx, productID)
}

// SelectProduct loads productID into the selected slice. A lookup that finds
// nothing leaves the slice failed with a NotFound code.
func (c *Controller) SelectProduct(ctx context.Context, productID string) error {
	ctx = c.logg.WithFlow(ctx, "details")
	ticket := c.store.IssueSelect(productID)
	return resolve(ctx, c, ticket, selectFailureMessage, func(ctx context.Context) (*catalog.Product, error) {
		p, err := c.gateway.FetchProductByID(ctx, productID)
		if err == nil && p == nil {
			err = catalog.ErrProductNotFound(productID)
		}
		return p, err
	}, func(seq uint64, p *catalog.Product) store.Action {
		return store.ProductSelected{Seq: seq, Product: *p}
	})
}

func selectFailureMessage(err error) string {
	if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		return msgProductNotFound
	}
	return msgFetchProduct
}
