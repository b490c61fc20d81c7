package app

import (
	"context"

	"github.com/solowear/storefront/internal/cart/domain"
)

type CartRepo interface {
	// Get returns the cart for a session, or an empty cart when none has
	// been persisted yet.
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) (domain.Cart, error)
}
