package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopstate/api/responses"
	"github.com/angelmondragon/shopstate/api/validators"
	"github.com/angelmondragon/shopstate/pkg/logger"
)

type choosePaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

// PaymentMethodsLoad fetches the payment options and returns them with the
// current selection.
func PaymentMethodsLoad(engine Engine, reader StateReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := engine.LoadPaymentMethods(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snap := reader.Snapshot()
		responses.WriteSuccess(w, map[string]any{
			"payment_methods":         snap.PaymentMethods.Value,
			"selected_payment_method": snap.SelectedPaymentMethod,
		})
	}
}

func PaymentMethodChoose(engine Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload choosePaymentMethodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := engine.ChoosePaymentMethod(payload.PaymentMethodID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"selected_payment_method": payload.PaymentMethodID})
	}
}

// Checkout places the order for the current cart.
func Checkout(engine Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		confirmation, err := engine.Checkout(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
