package docstore

import (
	"context"
	"fmt"

	"github.com/solowear/storefront/internal/order/app"
	"github.com/solowear/storefront/internal/order/domain"
	"github.com/solowear/storefront/internal/store"
)

// OrderRepo persists orders in the "orders" collection. The business
// order id lives in the "orderId" field; the backing document id is an
// implementation detail of the store.
type OrderRepo struct {
	col store.Collection
}

func NewOrderRepo(s store.Store) *OrderRepo {
	return &OrderRepo{col: s.Collection("orders")}
}

func (r *OrderRepo) Add(ctx context.Context, o domain.Order) (domain.Order, error) {
	rec, err := store.Encode(o)
	if err != nil {
		return domain.Order{}, fmt.Errorf("encode order: %w", err)
	}
	if _, err := r.col.Add(ctx, rec); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	rec, err := r.find(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	var o domain.Order
	if err := store.Decode(rec, &o); err != nil {
		return domain.Order{}, fmt.Errorf("decode order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	recs, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(recs))
	for _, rec := range recs {
		var o domain.Order
		if err := store.Decode(rec, &o); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepo) Update(ctx context.Context, o domain.Order) error {
	rec, err := r.find(ctx, o.ID)
	if err != nil {
		return err
	}

	patch, err := store.Encode(o)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	docID, _ := rec["id"].(string)
	return r.col.Update(ctx, docID, patch)
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	rec, err := r.find(ctx, id)
	if err != nil {
		if err == app.ErrNotFound {
			return nil
		}
		return err
	}

	docID, _ := rec["id"].(string)
	return r.col.Delete(ctx, docID)
}

func (r *OrderRepo) find(ctx context.Context, orderID string) (store.Record, error) {
	recs, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if rec["orderId"] == orderID {
			return rec, nil
		}
	}
	return nil, app.ErrNotFound
}
