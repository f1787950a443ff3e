package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopstate/api/responses"
	"github.com/angelmondragon/shopstate/api/validators"
	"github.com/angelmondragon/shopstate/internal/derive"
	"github.com/angelmondragon/shopstate/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type adjustResult struct {
	Applied  bool     `json:"applied"`
	Quantity int      `json:"quantity"`
	Cart     cartView `json:"cart"`
}

// CartAddItem adds one unit of a loaded product.
func CartAddItem(engine Engine, reader StateReader, sel *derive.Selectors, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := engine.AddToCart(r.Context(), payload.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(sel, reader.Snapshot()))
	}
}

// CartAdjust applies a throttled +1 or -1. A dropped tap is reported with
// applied=false and the unchanged quantity.
func CartAdjust(engine Engine, reader StateReader, sel *derive.Selectors, delta int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var applied bool
		if delta > 0 {
			applied = engine.IncrementQuantity(productID)
		} else {
			applied = engine.DecrementQuantity(productID)
		}

		snap := reader.Snapshot()
		responses.WriteSuccess(w, adjustResult{
			Applied:  applied,
			Quantity: derive.QuantityInCart(snap.Cart, productID),
			Cart:     newCartView(sel, snap),
		})
	}
}

// CartOpen shows the cart screen and returns its contents.
func CartOpen(engine Engine, reader StateReader, sel *derive.Selectors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine.OpenCart()
		responses.WriteSuccess(w, newCartView(sel, reader.Snapshot()))
	}
}

// CartRemoveItem drops a line; removing an absent line is not an error.
func CartRemoveItem(engine Engine, reader StateReader, sel *derive.Selectors, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		engine.RemoveFromCart(productID)
		responses.WriteSuccess(w, newCartView(sel, reader.Snapshot()))
	}
}
