package app

import (
	"context"

	"github.com/solowear/storefront/internal/order/domain"
)

type OrderRepo interface {
	Add(ctx context.Context, o domain.Order) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, o domain.Order) error
	Delete(ctx context.Context, id string) error
}

// Gateway is the payment collaborator. Initiate must be safe to retry
// for the same order id; the gateway dedupes on it.
type Gateway interface {
	Initiate(ctx context.Context, req InitiationRequest) (InitiationResult, error)
}

type InitiationRequest struct {
	OrderID     string
	Amount      float64
	CustomerRef string
}

type InitiationResult struct {
	Success       bool
	TransactionID string
	Message       string
}
