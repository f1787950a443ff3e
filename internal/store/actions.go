package store

import "github.com/angelmondragon/shopstate/internal/catalog"

// Action is a store transition request. The set of actions is closed.
type Action interface {
	actionName() string
}

// FetchIssued starts a request of Kind. ProductID is set for KindSelectedProduct.
type FetchIssued struct {
	Kind      FetchKind
	Seq       uint64
	ProductID string
}

// FetchFailed resolves a request of Kind with an error. Message is what readers see;
// when empty the error text is used.
type FetchFailed struct {
	Kind    FetchKind
	Seq     uint64
	Err     error
	Message string
}

type ProductsLoaded struct {
	Seq      uint64
	Products []catalog.Product
}

type BannersLoaded struct {
	Seq     uint64
	Banners []catalog.Banner
}

type ProductSelected struct {
	Seq     uint64
	Product catalog.Product
}

type PaymentMethodsLoaded struct {
	Seq     uint64
	Methods []catalog.PaymentMethod
}

// OrderPlaced resolves a checkout and empties the cart in the same transition.
type OrderPlaced struct {
	Seq          uint64
	Confirmation catalog.OrderConfirmation
}

// ProductsCleared empties the product list and supersedes any in-flight products request.
type ProductsCleared struct {
	Seq uint64
}

type CartLineAdded struct {
	Product  catalog.Product
	Quantity int
}

// QuantityUpdated sets a line's quantity exactly; zero or less removes the line.
type QuantityUpdated struct {
	ProductID string
	Quantity  int
}

type CartLineRemoved struct {
	ProductID string
}

type CartCleared struct{}

type PaymentMethodChosen struct {
	ID string
}

func (FetchIssued) actionName() string          { return "fetch_issued" }
func (FetchFailed) actionName() string          { return "fetch_failed" }
func (ProductsLoaded) actionName() string       { return "products_loaded" }
func (BannersLoaded) actionName() string        { return "banners_loaded" }
func (ProductSelected) actionName() string      { return "product_selected" }
func (PaymentMethodsLoaded) actionName() string { return "payment_methods_loaded" }
func (OrderPlaced) actionName() string          { return "order_placed" }
func (ProductsCleared) actionName() string      { return "products_cleared" }
func (CartLineAdded) actionName() string        { return "cart_line_added" }
func (QuantityUpdated) actionName() string      { return "quantity_updated" }
func (CartLineRemoved) actionName() string      { return "cart_line_removed" }
func (CartCleared) actionName() string          { return "cart_cleared" }
func (PaymentMethodChosen) actionName() string  { return "payment_method_chosen" }

// resolution returns the kind and sequence number of actions that resolve a fetch.
func resolution(a Action) (FetchKind, uint64, bool) {
	switch act := a.(type) {
	case FetchFailed:
		return act.Kind, act.Seq, true
	case ProductsLoaded:
		return KindProducts, act.Seq, true
	case BannersLoaded:
		return KindBanners, act.Seq, true
	case ProductSelected:
		return KindSelectedProduct, act.Seq, true
	case PaymentMethodsLoaded:
		return KindPaymentMethods, act.Seq, true
	case OrderPlaced:
		return KindOrder, act.Seq, true
	}
	return "", 0, false
}
