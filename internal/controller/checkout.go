package controller

import (
	"context"

	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/internal/derive"
	"github.com/angelmondragon/shopstate/internal/store"
	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
)

const (
	msgFetchPaymentMethods = "Failed to load payment methods"
	msgPlaceOrder          = "Failed to place order"
	msgSelectPayment       = "Please select a payment method"
)

// LoadPaymentMethods fetches the payment options. The first method becomes the
// selection when nothing valid is selected yet.
func (c *Controller) LoadPaymentMethods(ctx context.Context) error {
	ctx = c.logg.WithFlow(ctx, "checkout")
	ticket := c.store.Issue(store.KindPaymentMethods)
	return resolve(ctx, c, ticket, fixedMessage(msgFetchPaymentMethods), c.gateway.FetchPaymentMethods, func(seq uint64, methods []catalog.PaymentMethod) store.Action {
		return store.PaymentMethodsLoaded{Seq: seq, Methods: methods}
	})
}

// ChoosePaymentMethod selects one of the loaded payment methods.
func (c *Controller) ChoosePaymentMethod(id string) error {
	if _, ok := c.store.Snapshot().PaymentMethod(id); !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method").
			WithDetails(map[string]any{"payment_method_id": id})
	}
	c.store.ChoosePaymentMethod(id)
	return nil
}

// Checkout places one order for the current cart. Validation failures are returned
// before any slice transition or gateway call. The guard and the issuance happen
// in one store step, so concurrent checkouts yield one PlaceOrder call and a
// CodeConflict for the others. The call is never retried; on failure the cart is
// kept and the order slice is marked failed.
func (c *Controller) Checkout(ctx context.Context) (*catalog.OrderConfirmation, error) {
	ctx = c.logg.WithFlow(ctx, "checkout")
	ticket, snap, err := c.store.IssueOrder(validateCheckout)
	if err != nil {
		return nil, err
	}

	req := catalog.OrderRequest{
		PaymentMethodID: snap.SelectedPaymentMethod,
		Lines:           derive.OrderLines(snap.Cart),
		Total:           derive.CartSummary(snap.Cart).Total,
	}

	var confirmation *catalog.OrderConfirmation
	applied, err := resolveApplied(ctx, c, ticket, fixedMessage(msgPlaceOrder), func(ctx context.Context) (*catalog.OrderConfirmation, error) {
		conf, err := c.gateway.PlaceOrder(ctx, req)
		if err == nil && conf == nil {
			err = pkgerrors.New(pkgerrors.CodeDependency, "order not confirmed")
		}
		return conf, err
	}, func(seq uint64, conf *catalog.OrderConfirmation) store.Action {
		confirmation = conf
		return store.OrderPlaced{Seq: seq, Confirmation: *conf}
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order superseded").
			WithDetails(map[string]any{"order_id": confirmation.OrderID})
	}

	c.logg.Info(c.logg.WithField(ctx, "order_id", confirmation.OrderID), "controller.checkout.order_placed")
	c.nav.Navigate(RouteConfirmation, map[string]string{"orderId": confirmation.OrderID})
	return confirmation, nil
}

func validateCheckout(s store.State) error {
	if len(s.Cart) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if _, ok := s.PaymentMethod(s.SelectedPaymentMethod); !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, msgSelectPayment)
	}
	return nil
}

// BackToHome resets navigation to the home screen after a confirmation.
func (c *Controller) BackToHome() {
	c.nav.Reset(RouteHome)
}
