package derive

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/internal/store"
)

// TaxRate is applied to the cart subtotal.
var TaxRate = decimal.RequireFromString("0.10")

// OrderSummary is computed from the live cart and never stored.
type OrderSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// CartSummary sums price times quantity over the lines. An empty cart yields zeros.
func CartSummary(lines []store.CartLine) OrderSummary {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	tax := subtotal.Mul(TaxRate)
	return OrderSummary{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// QuantityInCart returns the line quantity for productID, or 0.
func QuantityInCart(lines []store.CartLine, productID string) int {
	for _, line := range lines {
		if line.Product.ID == productID {
			return line.Quantity
		}
	}
	return 0
}

func CartItemCount(lines []store.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// GroupByTag keeps the products carrying tag, in their original order.
func GroupByTag(products []catalog.Product, tag string) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// OrderLines converts the cart into the lines sent with an order.
func OrderLines(lines []store.CartLine) []catalog.OrderLine {
	out := make([]catalog.OrderLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, catalog.OrderLine{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price,
		})
	}
	return out
}
