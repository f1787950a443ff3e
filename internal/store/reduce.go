package store

import (
	"github.com/angelmondragon/shopstate/internal/catalog"
	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
)

// Reduce applies a to s and returns the next state and whether anything changed.
// It never mutates s. Version is left to the caller.
func Reduce(s State, a Action) (State, bool) {
	if Stale(s, a) {
		return s, false
	}

	switch act := a.(type) {
	case FetchIssued:
		return issue(s, act)

	case FetchFailed:
		return fail(s, act)

	case ProductsLoaded:
		s.Products = s.Products.succeeded(nonNil(act.Products))
		return s, true

	case BannersLoaded:
		s.Banners = s.Banners.succeeded(nonNil(act.Banners))
		return s, true

	case ProductSelected:
		product := act.Product
		s.Selected = s.Selected.succeeded(&product)
		return s, true

	case PaymentMethodsLoaded:
		methods := nonNil(act.Methods)
		s.PaymentMethods = s.PaymentMethods.succeeded(methods)
		if _, ok := s.PaymentMethod(s.SelectedPaymentMethod); !ok {
			s.SelectedPaymentMethod = ""
			if len(methods) > 0 {
				s.SelectedPaymentMethod = methods[0].ID
			}
		}
		return s, true

	case OrderPlaced:
		confirmation := act.Confirmation
		s.Order = s.Order.succeeded(&confirmation)
		s.Cart = []CartLine{}
		return s, true

	case ProductsCleared:
		s.Products = AsyncSlice[[]catalog.Product]{Value: []catalog.Product{}, Status: StatusIdle, seq: act.Seq}
		return s, true

	case CartLineAdded:
		return addToCart(s, act.Product, act.Quantity)

	case QuantityUpdated:
		return updateQuantity(s, act.ProductID, act.Quantity)

	case CartLineRemoved:
		return removeFromCart(s, act.ProductID)

	case CartCleared:
		if len(s.Cart) == 0 {
			return s, false
		}
		s.Cart = []CartLine{}
		return s, true

	case PaymentMethodChosen:
		if s.SelectedPaymentMethod == act.ID {
			return s, false
		}
		s.SelectedPaymentMethod = act.ID
		return s, true
	}
	return s, false
}

// Stale reports whether a resolves a request that a newer issuance of the same
// kind has superseded.
func Stale(s State, a Action) bool {
	kind, seq, ok := resolution(a)
	if !ok {
		return false
	}
	return seq != latestSeq(s, kind)
}

func latestSeq(s State, kind FetchKind) uint64 {
	switch kind {
	case KindProducts:
		return s.Products.seq
	case KindBanners:
		return s.Banners.seq
	case KindSelectedProduct:
		return s.Selected.seq
	case KindPaymentMethods:
		return s.PaymentMethods.seq
	case KindOrder:
		return s.Order.seq
	}
	return 0
}

func issue(s State, act FetchIssued) (State, bool) {
	switch act.Kind {
	case KindProducts:
		s.Products = s.Products.issued(act.Seq)
	case KindBanners:
		s.Banners = s.Banners.issued(act.Seq)
	case KindSelectedProduct:
		s.Selected = s.Selected.issued(act.Seq)
		if current := s.Selected.Value; current != nil && current.ID != act.ProductID {
			s.Selected.Value = nil
		}
	case KindPaymentMethods:
		s.PaymentMethods = s.PaymentMethods.issued(act.Seq)
	case KindOrder:
		s.Order = s.Order.issued(act.Seq)
	default:
		return s, false
	}
	return s, true
}

func fail(s State, act FetchFailed) (State, bool) {
	message := act.Message
	if message == "" && act.Err != nil {
		message = act.Err.Error()
	}
	code := pkgerrors.CodeOf(act.Err)

	switch act.Kind {
	case KindProducts:
		s.Products = s.Products.failed(message, code)
	case KindBanners:
		s.Banners = s.Banners.failed(message, code)
	case KindSelectedProduct:
		s.Selected = s.Selected.failed(message, code)
	case KindPaymentMethods:
		s.PaymentMethods = s.PaymentMethods.failed(message, code)
	case KindOrder:
		s.Order = s.Order.failed(message, code)
	default:
		return s, false
	}
	return s, true
}

func addToCart(s State, product catalog.Product, quantity int) (State, bool) {
	if quantity <= 0 {
		return s, false
	}
	cart := make([]CartLine, len(s.Cart), len(s.Cart)+1)
	copy(cart, s.Cart)
	if i := s.cartIndex(product.ID); i >= 0 {
		cart[i].Quantity += quantity
	} else {
		cart = append(cart, CartLine{Product: product, Quantity: quantity})
	}
	s.Cart = cart
	return s, true
}

func updateQuantity(s State, productID string, quantity int) (State, bool) {
	i := s.cartIndex(productID)
	if i < 0 {
		return s, false
	}
	if quantity <= 0 {
		return removeFromCart(s, productID)
	}
	if s.Cart[i].Quantity == quantity {
		return s, false
	}
	cart := make([]CartLine, len(s.Cart))
	copy(cart, s.Cart)
	cart[i].Quantity = quantity
	s.Cart = cart
	return s, true
}

func removeFromCart(s State, productID string) (State, bool) {
	i := s.cartIndex(productID)
	if i < 0 {
		return s, false
	}
	cart := make([]CartLine, 0, len(s.Cart)-1)
	cart = append(cart, s.Cart[:i]...)
	cart = append(cart, s.Cart[i+1:]...)
	s.Cart = cart
	return s, true
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
