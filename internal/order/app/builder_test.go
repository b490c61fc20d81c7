package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	cartdomain "github.com/solowear/storefront/internal/cart/domain"
	"github.com/solowear/storefront/internal/order/domain"
	"github.com/solowear/storefront/internal/pricing"
)

type fakeGateway struct {
	result InitiationResult
	err    error
	calls  int
}

func (f *fakeGateway) Initiate(ctx context.Context, req InitiationRequest) (InitiationResult, error) {
	f.calls++
	return f.result, f.err
}

func validCustomer() domain.Customer {
	return domain.Customer{
		Name:       "Ayesha Khan",
		Email:      "ayesha@example.com",
		Phone:      "03001234567",
		Address:    "12 Mall Road",
		City:       "Lahore",
		PostalCode: "54000",
	}
}

func filledCart() cartdomain.Cart {
	return cartdomain.Cart{
		SessionID: "s1",
		Lines: []cartdomain.Line{
			{ProductID: "p1", Name: "Premium T-Shirt", Price: 1999, SalePrice: 1499, Quantity: 2, Size: "M", Color: "black"},
		},
	}
}

func newBuilder(gw Gateway) *Builder {
	return NewBuilder(gw, pricing.NewPolicy(200, 0), "SW")
}

func TestBuildEmptyCart(t *testing.T) {
	b := newBuilder(&fakeGateway{})

	_, err := b.Build(context.Background(), cartdomain.Cart{}, validCustomer(), domain.PaymentCashOnDelivery)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}

	// Customer validity is irrelevant: the empty cart wins.
	_, err = b.Build(context.Background(), cartdomain.Cart{}, domain.Customer{}, domain.PaymentCashOnDelivery)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}

func TestBuildValidation(t *testing.T) {
	b := newBuilder(&fakeGateway{})

	customer := validCustomer()
	customer.Email = ""
	customer.City = "   "

	_, err := b.Build(context.Background(), filledCart(), customer, domain.PaymentCashOnDelivery)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("fields = %v, want [email city]", verr.Fields)
	}

	_, err = b.Build(context.Background(), filledCart(), validCustomer(), domain.PaymentMethod("bitcoin"))
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError for unknown method", err)
	}
}

func TestBuildPaymentStatusByMethod(t *testing.T) {
	t.Run("cash on delivery -> pending", func(t *testing.T) {
		b := newBuilder(&fakeGateway{})
		order, err := b.Build(context.Background(), filledCart(), validCustomer(), domain.PaymentCashOnDelivery)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if order.PaymentStatus != domain.PaymentStatusPending {
			t.Fatalf("payment status = %s, want pending", order.PaymentStatus)
		}
	})

	t.Run("card -> processing", func(t *testing.T) {
		b := newBuilder(&fakeGateway{})
		order, err := b.Build(context.Background(), filledCart(), validCustomer(), domain.PaymentCard)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if order.PaymentStatus != domain.PaymentStatusProcessing {
			t.Fatalf("payment status = %s, want processing", order.PaymentStatus)
		}
	})

	t.Run("easypaisa success -> initiated with txn ref", func(t *testing.T) {
		gw := &fakeGateway{result: InitiationResult{Success: true, TransactionID: "TXN123"}}
		b := newBuilder(gw)

		order, err := b.Build(context.Background(), filledCart(), validCustomer(), domain.PaymentEasyPaisa)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if order.PaymentStatus != domain.PaymentStatusInitiated {
			t.Fatalf("payment status = %s, want initiated", order.PaymentStatus)
		}
		if order.TransactionID != "TXN123" {
			t.Fatalf("transaction id = %q, want TXN123", order.TransactionID)
		}
		if gw.calls != 1 {
			t.Fatalf("gateway calls = %d, want 1", gw.calls)
		}
	})

	t.Run("easypaisa declined -> PaymentInitiationError", func(t *testing.T) {
		gw := &fakeGateway{result: InitiationResult{Success: false, Message: "insufficient balance"}}
		b := newBuilder(gw)

		_, err := b.Build(context.Background(), filledCart(), validCustomer(), domain.PaymentEasyPaisa)

		var perr *PaymentInitiationError
		if !errors.As(err, &perr) {
			t.Fatalf("err = %v, want *PaymentInitiationError", err)
		}
		if !strings.Contains(perr.Error(), "insufficient balance") {
			t.Fatalf("message %q does not carry gateway reason", perr.Error())
		}
	})

	t.Run("easypaisa unreachable -> PaymentInitiationError", func(t *testing.T) {
		gw := &fakeGateway{err: errors.New("connection refused")}
		b := newBuilder(gw)

		_, err := b.Build(context.Background(), filledCart(), validCustomer(), domain.PaymentEasyPaisa)

		var perr *PaymentInitiationError
		if !errors.As(err, &perr) {
			t.Fatalf("err = %v, want *PaymentInitiationError", err)
		}
	})
}

func TestBuildTotalsAndLifecycle(t *testing.T) {
	b := newBuilder(&fakeGateway{})

	order, err := b.Build(context.Background(), filledCart(), validCustomer(), domain.PaymentCashOnDelivery)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if order.Status != domain.StatusPending {
		t.Fatalf("status = %s, want pending", order.Status)
	}
	if order.Totals.Subtotal != 2998 || order.Totals.Shipping != 200 || order.Totals.Total != 3198 {
		t.Fatalf("totals = %+v, want 2998/200/3198", order.Totals)
	}
	if !strings.HasPrefix(order.ID, "SW-") {
		t.Fatalf("order id %q missing prefix", order.ID)
	}
	if order.CreatedAt.IsZero() {
		t.Fatal("created at not set")
	}
}

func TestBuildSnapshotsLines(t *testing.T) {
	b := newBuilder(&fakeGateway{})
	cart := filledCart()

	order, err := b.Build(context.Background(), cart, validCustomer(), domain.PaymentCashOnDelivery)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cart.Lines[0].Quantity = 99
	cart.Lines[0].Name = "mutated"

	if order.Lines[0].Quantity != 2 || order.Lines[0].Name != "Premium T-Shirt" {
		t.Fatalf("order lines changed with the cart: %+v", order.Lines[0])
	}
}

func TestBuildOrderIDsDiffer(t *testing.T) {
	b := newBuilder(&fakeGateway{})

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		order, err := b.Build(context.Background(), filledCart(), validCustomer(), domain.PaymentCashOnDelivery)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if seen[order.ID] {
			t.Fatalf("duplicate order id %q", order.ID)
		}
		seen[order.ID] = true
	}
}
