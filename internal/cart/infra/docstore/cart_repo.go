package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/solowear/storefront/internal/cart/domain"
	"github.com/solowear/storefront/internal/store"
)

// CartRepo persists one cart document per session in the "carts"
// collection. The session id is a field rather than the document id
// because the store assigns document ids itself.
type CartRepo struct {
	col store.Collection
}

func NewCartRepo(s store.Store) *CartRepo {
	return &CartRepo{col: s.Collection("carts")}
}

func (r *CartRepo) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	rec, err := r.find(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	if rec == nil {
		return domain.Cart{SessionID: sessionID, UpdatedAt: time.Now().UTC()}, nil
	}

	var cart domain.Cart
	if err := store.Decode(rec, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	cart.SessionID = sessionID
	return cart, nil
}

func (r *CartRepo) Save(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	rec, err := store.Encode(cart)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("encode cart: %w", err)
	}
	// An empty line slice must overwrite, not vanish from the patch.
	if cart.Lines == nil {
		rec["lines"] = []any{}
	}

	existing, err := r.find(ctx, cart.SessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	if existing == nil {
		id, err := r.col.Add(ctx, rec)
		if err != nil {
			return domain.Cart{}, err
		}
		cart.ID = id
		return cart, nil
	}

	id, _ := existing["id"].(string)
	if err := r.col.Update(ctx, id, rec); err != nil {
		return domain.Cart{}, err
	}
	cart.ID = id
	return cart, nil
}

func (r *CartRepo) find(ctx context.Context, sessionID string) (store.Record, error) {
	recs, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if rec["sessionId"] == sessionID {
			return rec, nil
		}
	}
	return nil, nil
}
