package domain

import (
	"time"

	cartdomain "github.com/solowear/storefront/internal/cart/domain"
	"github.com/solowear/storefront/internal/pricing"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentEasyPaisa      PaymentMethod = "easypaisa"
	PaymentCard           PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentEasyPaisa, PaymentCard:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusInitiated  PaymentStatus = "initiated"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusFailed     PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusInitiated, PaymentStatusProcessing,
		PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo permits pending -> completed|cancelled only; completed
// and cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && (next == StatusCompleted || next == StatusCancelled)
}

type Customer struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Order is created once at checkout. Line items are snapshots and never
// change afterwards; only the status fields move, and only through admin
// operations.
type Order struct {
	ID            string            `json:"orderId"`
	Customer      Customer          `json:"customer"`
	Lines         []cartdomain.Line `json:"lines"`
	Totals        pricing.Breakdown `json:"totals"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	TransactionID string            `json:"transactionId,omitempty"`
	Status        Status            `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}
