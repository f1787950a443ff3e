package controller

import (
	"context"

	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
	"github.com/angelmondragon/shopstate/pkg/timing"
)

type screen string

const (
	screenCart    screen = "cart"
	screenDetails screen = "details"
)

type adjustment struct {
	productID string
	delta     int
}

// QuantityAdjuster throttles +1/-1 taps for one screen instance. The adjustment
// reads the cart when it executes, not when the tap happened.
type QuantityAdjuster struct {
	c        *Controller
	screen   screen
	throttle *timing.Throttler[adjustment]
}

func (c *Controller) newAdjuster(s screen) *QuantityAdjuster {
	a := &QuantityAdjuster{c: c, screen: s}
	a.throttle = timing.NewThrottler(a.apply, c.timing.QuantityThrottle, c.clock)
	return a
}

// CartScreen returns an adjuster for a new cart screen instance. Decrement stops
// at one; removing a line goes through RemoveFromCart.
func (c *Controller) CartScreen() *QuantityAdjuster {
	return c.newAdjuster(screenCart)
}

// DetailsScreen returns an adjuster for a new product details screen instance.
// Decrementing a line at one removes it.
func (c *Controller) DetailsScreen() *QuantityAdjuster {
	return c.newAdjuster(screenDetails)
}

// Increment reports whether the tap executed or was dropped by the throttle.
func (a *QuantityAdjuster) Increment(productID string) bool {
	return a.throttle.Call(adjustment{productID: productID, delta: 1})
}

func (a *QuantityAdjuster) Decrement(productID string) bool {
	return a.throttle.Call(adjustment{productID: productID, delta: -1})
}

// Reset reopens the throttle window, as when the screen is shown anew.
func (a *QuantityAdjuster) Reset() {
	a.throttle.Reset()
}

func (a *QuantityAdjuster) apply(adj adjustment) {
	snap := a.c.store.Snapshot()
	line, ok := snap.CartLine(adj.productID)
	if !ok {
		if adj.delta > 0 {
			if p, found := snap.FindProduct(adj.productID); found {
				a.c.store.AddToCart(p, adj.delta)
			}
		}
		return
	}

	next := line.Quantity + adj.delta
	if a.screen == screenCart && next < 1 {
		return
	}
	a.c.store.UpdateQuantity(adj.productID, next)
}

// IncrementQuantity and DecrementQuantity use the controller's own cart screen scope.
func (c *Controller) IncrementQuantity(productID string) bool {
	return c.adjuster.Increment(productID)
}

func (c *Controller) DecrementQuantity(productID string) bool {
	return c.adjuster.Decrement(productID)
}

// AddToCart adds one unit of a product already known to the store.
func (c *Controller) AddToCart(ctx context.Context, productID string) error {
	product, ok := c.store.Snapshot().FindProduct(productID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not loaded").
			WithDetails(map[string]any{"product_id": productID})
	}
	c.store.AddToCart(product, 1)
	c.logg.Debug(c.logg.WithFields(ctx, map[string]any{"flow": "cart", "product_id": productID}), "controller.cart.added")
	return nil
}

func (c *Controller) RemoveFromCart(productID string) {
	c.store.RemoveFromCart(productID)
}

// OpenCart navigates to the cart screen. The default adjuster belongs to that
// screen, so its throttle window starts fresh.
func (c *Controller) OpenCart() {
	c.adjuster.Reset()
	c.nav.Navigate(RouteCart, nil)
}

// ProceedToReview moves from the cart to checkout review when the cart has lines.
func (c *Controller) ProceedToReview() error {
	if len(c.store.Snapshot().Cart) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	c.nav.Navigate(RouteCartReview, nil)
	return nil
}

