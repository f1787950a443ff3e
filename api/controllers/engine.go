package controllers

import (
	"context"

	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/internal/store"
)

// Engine is the slice of the interaction controller the HTTP harness drives.
type Engine interface {
	LoadCatalog(ctx context.Context) error
	Refresh(ctx context.Context)
	Search(ctx context.Context, text string)
	SelectProduct(ctx context.Context, productID string) error
	AddToCart(ctx context.Context, productID string) error
	IncrementQuantity(productID string) bool
	DecrementQuantity(productID string) bool
	RemoveFromCart(productID string)
	OpenCart()
	LoadPaymentMethods(ctx context.Context) error
	ChoosePaymentMethod(id string) error
	Checkout(ctx context.Context) (*catalog.OrderConfirmation, error)
}

// StateReader exposes store snapshots.
type StateReader interface {
	Snapshot() store.State
}
