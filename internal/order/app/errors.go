package app

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError lists the customer fields that were missing or invalid
// so the form can highlight them.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// PaymentInitiationError means the gateway declined or was unreachable.
// The order was not created; the cart is intact and checkout can be
// retried.
type PaymentInitiationError struct {
	Message string
	Err     error
}

func (e *PaymentInitiationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment initiation failed: %s", e.Message)
	}
	return "payment initiation failed"
}

func (e *PaymentInitiationError) Unwrap() error { return e.Err }
