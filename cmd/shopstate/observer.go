package main

import (
	"context"

	"github.com/angelmondragon/shopstate/internal/derive"
	"github.com/angelmondragon/shopstate/internal/store"
	"github.com/angelmondragon/shopstate/pkg/logger"
)

// watchState logs a short summary of every applied store change at debug level.
func watchState(st *store.Store, logg *logger.Logger) (stop func()) {
	return st.Subscribe(func(s store.State) {
		summary := derive.CartSummary(s.Cart)
		logg.Debug(logg.WithFields(context.Background(), map[string]any{
			"version":    s.Version,
			"products":   string(s.Products.Status),
			"cart_items": derive.CartItemCount(s.Cart),
			"cart_total": summary.Total.StringFixed(2),
		}), "store.state.changed")
	})
}
