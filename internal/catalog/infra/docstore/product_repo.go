package docstore

import (
	"context"
	"fmt"

	"github.com/solowear/storefront/internal/catalog/app"
	"github.com/solowear/storefront/internal/catalog/domain"
	"github.com/solowear/storefront/internal/store"
)

type ProductRepo struct {
	col store.Collection
}

func NewProductRepo(s store.Store) *ProductRepo {
	return &ProductRepo{col: s.Collection("products")}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	rec, err := store.Encode(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("encode product: %w", err)
	}

	id, err := r.col.Add(ctx, rec)
	if err != nil {
		return domain.Product{}, err
	}

	p.ID = id
	return p, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	rec, err := r.col.GetByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return domain.Product{}, app.ErrNotFound
		}
		return domain.Product{}, err
	}
	return decode(rec)
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	recs, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(recs))
	for _, rec := range recs {
		p, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	rec, err := store.Encode(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	if err := r.col.Update(ctx, p.ID, rec); err != nil {
		if err == store.ErrNotFound {
			return app.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.col.Delete(ctx, id)
}

func decode(rec store.Record) (domain.Product, error) {
	var p domain.Product
	if err := store.Decode(rec, &p); err != nil {
		return domain.Product{}, fmt.Errorf("decode product: %w", err)
	}
	if id, ok := rec["id"].(string); ok {
		p.ID = id
	}
	return p, nil
}
