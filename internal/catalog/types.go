package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an immutable catalog entry. A refetch replaces it wholesale.
type Product struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Images      []string        `json:"images" validate:"min=1,dive,required"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags,omitempty"`
	Category    string          `json:"category"`
}

// HasTag reports whether the product carries tag (exact match).
func (p Product) HasTag(tag string) bool {
	for _, candidate := range p.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

// Banner is a display-only promotional slide.
type Banner struct {
	ID       string `json:"id" validate:"required"`
	Image    string `json:"image" validate:"required"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}

type PaymentMethod struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon,omitempty"`
}

// OrderLine is one cart line sent with an order.
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderRequest is the payload for PlaceOrder.
type OrderRequest struct {
	PaymentMethodID string          `json:"payment_method_id"`
	Lines           []OrderLine     `json:"lines"`
	Total           decimal.Decimal `json:"total"`
}

// OrderConfirmation is returned by a successful PlaceOrder.
type OrderConfirmation struct {
	OrderID  string    `json:"order_id"`
	PlacedAt time.Time `json:"placed_at"`
}

// Operation names a gateway call; used for metrics labels, cache keys and fault injection.
type Operation string

const (
	OpFetchAllProducts    Operation = "fetch_all_products"
	OpFetchProductByID    Operation = "fetch_product_by_id"
	OpSearchProducts      Operation = "search_products"
	OpFetchBanners        Operation = "fetch_banners"
	OpFetchPaymentMethods Operation = "fetch_payment_methods"
	OpPlaceOrder          Operation = "place_order"
)
