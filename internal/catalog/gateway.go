package catalog

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
)

// Gateway is the remote catalog contract. Every call may fail, and may be
// superseded by a later call of the same kind before it resolves.
type Gateway interface {
	FetchAllProducts(ctx context.Context) ([]Product, error)
	// FetchProductByID returns a CodeNotFound error when no product matches.
	FetchProductByID(ctx context.Context, id string) (*Product, error)
	SearchProducts(ctx context.Context, text string) ([]Product, error)
	FetchBanners(ctx context.Context) ([]Banner, error)
	FetchPaymentMethods(ctx context.Context) ([]PaymentMethod, error)
	PlaceOrder(ctx context.Context, req OrderRequest) (*OrderConfirmation, error)
}

// CatalogInvalidator is implemented by gateways that keep a local copy of the
// catalog lists.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context) error
}

// ErrProductNotFound builds the NotFound error for a product lookup.
func ErrProductNotFound(id string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
		WithDetails(map[string]any{"product_id": id})
}

// AsFailure normalizes a gateway error: typed errors pass through, context
// cancellation and deadlines become dependency failures, anything else is wrapped
// as a dependency failure for op.
func AsFailure(op Operation, err error) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, string(op)+" timed out")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, string(op)+" failed")
}

// NormalizeQuery trims and lower-cases a search text.
func NormalizeQuery(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// MatchesQuery reports whether p matches an already normalized query on name,
// description or category.
func MatchesQuery(p Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}
