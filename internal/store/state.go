package store

import "github.com/angelmondragon/shopstate/internal/catalog"

// FetchKind groups the requests that write the same slice. Fetch-all, search and
// clear-search share KindProducts.
type FetchKind string

const (
	KindProducts        FetchKind = "products"
	KindBanners         FetchKind = "banners"
	KindSelectedProduct FetchKind = "selected_product"
	KindPaymentMethods  FetchKind = "payment_methods"
	KindOrder           FetchKind = "order"
)

// CartLine is one product in the cart. Quantity is always >= 1.
type CartLine struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// State is an immutable snapshot of the store. Callers must not mutate the slices
// or pointers it holds; every transition builds new ones.
type State struct {
	Products       AsyncSlice[[]catalog.Product]          `json:"products"`
	Banners        AsyncSlice[[]catalog.Banner]           `json:"banners"`
	Selected       AsyncSlice[*catalog.Product]           `json:"selected_product"`
	PaymentMethods AsyncSlice[[]catalog.PaymentMethod]    `json:"payment_methods"`
	Order          AsyncSlice[*catalog.OrderConfirmation] `json:"order"`
	Cart           []CartLine                             `json:"cart"`

	SelectedPaymentMethod string `json:"selected_payment_method,omitempty"`
	Version               uint64 `json:"version"`
}

// Initial returns the empty state every store starts from.
func Initial() State {
	return State{
		Products:       AsyncSlice[[]catalog.Product]{Value: []catalog.Product{}, Status: StatusIdle},
		Banners:        AsyncSlice[[]catalog.Banner]{Value: []catalog.Banner{}, Status: StatusIdle},
		Selected:       AsyncSlice[*catalog.Product]{Status: StatusIdle},
		PaymentMethods: AsyncSlice[[]catalog.PaymentMethod]{Value: []catalog.PaymentMethod{}, Status: StatusIdle},
		Order:          AsyncSlice[*catalog.OrderConfirmation]{Status: StatusIdle},
		Cart:           []CartLine{},
	}
}

// CartLine returns the line for productID, if present.
func (s State) CartLine(productID string) (CartLine, bool) {
	if i := s.cartIndex(productID); i >= 0 {
		return s.Cart[i], true
	}
	return CartLine{}, false
}

// FindProduct looks productID up in the selected product first, then the product list.
func (s State) FindProduct(productID string) (catalog.Product, bool) {
	if p := s.Selected.Value; p != nil && p.ID == productID {
		return *p, true
	}
	for _, p := range s.Products.Value {
		if p.ID == productID {
			return p, true
		}
	}
	if line, ok := s.CartLine(productID); ok {
		return line.Product, true
	}
	return catalog.Product{}, false
}

// PaymentMethod returns the method with id, if loaded.
func (s State) PaymentMethod(id string) (catalog.PaymentMethod, bool) {
	for _, m := range s.PaymentMethods.Value {
		if m.ID == id {
			return m, true
		}
	}
	return catalog.PaymentMethod{}, false
}

func (s State) cartIndex(productID string) int {
	for i, line := range s.Cart {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}
