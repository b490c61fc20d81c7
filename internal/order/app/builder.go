package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdomain "github.com/solowear/storefront/internal/cart/domain"
	"github.com/solowear/storefront/internal/order/domain"
	"github.com/solowear/storefront/internal/pricing"
)

// Builder assembles a persistable order from the cart, the checkout form
// and the chosen payment method. It never persists anything itself; its
// only side effect is the payment initiation call for wallet payments.
type Builder struct {
	gateway Gateway
	policy  pricing.Policy
	prefix  string

	now func() time.Time
}

func NewBuilder(gateway Gateway, policy pricing.Policy, prefix string) *Builder {
	if prefix == "" {
		prefix = "SW"
	}
	return &Builder{
		gateway: gateway,
		policy:  policy,
		prefix:  prefix,
		now:     time.Now,
	}
}

func (b *Builder) Build(ctx context.Context, cart cartdomain.Cart, customer domain.Customer, method domain.PaymentMethod) (domain.Order, error) {
	if cart.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}
	if missing := missingFields(customer, method); len(missing) > 0 {
		return domain.Order{}, &ValidationError{Fields: missing}
	}

	totals := pricing.ComputeTotals(cart.Lines, b.policy)

	// Defensive copy: mutating the cart after checkout must not touch
	// the built order.
	lines := make([]cartdomain.Line, len(cart.Lines))
	copy(lines, cart.Lines)

	order := domain.Order{
		ID:            b.newOrderID(),
		Customer:      customer,
		Lines:         lines,
		Totals:        totals,
		PaymentMethod: method,
		Status:        domain.StatusPending,
		CreatedAt:     b.now().UTC(),
	}

	switch method {
	case domain.PaymentCashOnDelivery:
		order.PaymentStatus = domain.PaymentStatusPending

	case domain.PaymentCard:
		order.PaymentStatus = domain.PaymentStatusProcessing

	case domain.PaymentEasyPaisa:
		result, err := b.gateway.Initiate(ctx, InitiationRequest{
			OrderID:     order.ID,
			Amount:      totals.Total,
			CustomerRef: customer.Phone,
		})
		if err != nil {
			return domain.Order{}, &PaymentInitiationError{Message: "gateway unreachable", Err: err}
		}
		if !result.Success {
			return domain.Order{}, &PaymentInitiationError{Message: result.Message}
		}
		order.PaymentStatus = domain.PaymentStatusInitiated
		order.TransactionID = result.TransactionID
	}

	return order, nil
}

func (b *Builder) newOrderID() string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%d-%s", b.prefix, b.now().UnixMilli(), suffix)
}

func missingFields(c domain.Customer, method domain.PaymentMethod) []string {
	var missing []string

	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	check("name", c.Name)
	check("email", c.Email)
	check("phone", c.Phone)
	check("address", c.Address)
	check("city", c.City)
	check("postalCode", c.PostalCode)

	if !method.Valid() {
		missing = append(missing, "paymentMethod")
	}
	return missing
}
