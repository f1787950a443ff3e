package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopstate/api/responses"
	"github.com/angelmondragon/shopstate/internal/derive"
	"github.com/angelmondragon/shopstate/internal/store"
)

type stateView struct {
	store.State
	Summary       derive.OrderSummary `json:"summary"`
	CartItemCount int                 `json:"cart_item_count"`
}

type cartView struct {
	Lines         []store.CartLine    `json:"lines"`
	Summary       derive.OrderSummary `json:"summary"`
	CartItemCount int                 `json:"cart_item_count"`
	Version       uint64              `json:"version"`
}

func newCartView(sel *derive.Selectors, snap store.State) cartView {
	return cartView{
		Lines:         snap.Cart,
		Summary:       sel.CartSummary(snap),
		CartItemCount: sel.CartItemCount(snap),
		Version:       snap.Version,
	}
}

// State returns the full snapshot with its derived cart summary.
func State(reader StateReader, sel *derive.Selectors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := reader.Snapshot()
		responses.WriteSuccess(w, stateView{
			State:         snap,
			Summary:       sel.CartSummary(snap),
			CartItemCount: sel.CartItemCount(snap),
		})
	}
}

// Home returns the banner section and the tag carousels.
func Home(reader StateReader, sel *derive.Selectors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, sel.Home(reader.Snapshot()))
	}
}

// Cart returns the cart lines and their summary.
func Cart(reader StateReader, sel *derive.Selectors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newCartView(sel, reader.Snapshot()))
	}
}
