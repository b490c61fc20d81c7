package httpapi

import (
	"errors"
	"net/http"

	catalogapp "github.com/solowear/storefront/internal/catalog/app"
	orderapp "github.com/solowear/storefront/internal/order/app"
	"github.com/solowear/storefront/internal/store"
)

// classify maps application errors to an HTTP status and a stable code
// string the storefront pages switch on. Unknown errors become 500 with
// no internal detail leaked.
func classify(err error) (int, errorBody) {
	var validation *orderapp.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, errorBody{
			Code:    "VALIDATION_FAILED",
			Message: validation.Error(),
			Fields:  validation.Fields,
		}
	}

	var payment *orderapp.PaymentInitiationError
	if errors.As(err, &payment) {
		return http.StatusPaymentRequired, errorBody{
			Code:    "PAYMENT_FAILED",
			Message: payment.Error(),
		}
	}

	switch {
	case errors.Is(err, orderapp.ErrEmptyCart):
		return http.StatusBadRequest, errorBody{
			Code:    "EMPTY_CART",
			Message: "cart is empty",
		}

	case errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, orderapp.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, errorBody{
			Code:    "NOT_FOUND",
			Message: "not found",
		}

	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput):
		return http.StatusBadRequest, errorBody{
			Code:    "INVALID_ARGUMENT",
			Message: err.Error(),
		}

	case errors.Is(err, orderapp.ErrInvalidTransition):
		return http.StatusConflict, errorBody{
			Code:    "INVALID_TRANSITION",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorBody{
		Code:    "INTERNAL",
		Message: "internal error",
	}
}
