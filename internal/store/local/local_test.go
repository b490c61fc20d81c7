package local

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/solowear/storefront/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestCollectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	col := newTestStore(t).Collection("products")

	id, err := col.Add(ctx, store.Record{"name": "Premium T-Shirt", "price": 1999.0})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id == "" {
		t.Fatal("Add returned empty id")
	}

	rec, err := col.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if rec["name"] != "Premium T-Shirt" {
		t.Fatalf("name = %v", rec["name"])
	}
	if rec["id"] != id {
		t.Fatalf("id field = %v, want %s", rec["id"], id)
	}

	all, err := col.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("GetAll returned %d records, want 1", len(all))
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	col := newTestStore(t).Collection("products")

	id, err := col.Add(ctx, store.Record{"name": "Hoodie", "price": 3499.0})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := col.Update(ctx, id, store.Record{"price": 2999.0}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	rec, err := col.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if rec["price"] != 2999.0 {
		t.Fatalf("price = %v, want 2999", rec["price"])
	}
	if rec["name"] != "Hoodie" {
		t.Fatalf("untouched field changed: %v", rec["name"])
	}

	t.Run("missing id -> ErrNotFound", func(t *testing.T) {
		err := col.Update(ctx, "missing", store.Record{"price": 1.0})
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("patch cannot overwrite id", func(t *testing.T) {
		if err := col.Update(ctx, id, store.Record{"id": "hijacked"}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if _, err := col.GetByID(ctx, id); err != nil {
			t.Fatalf("record lost its id: %v", err)
		}
	})
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	col := newTestStore(t).Collection("products")

	id, err := col.Add(ctx, store.Record{"name": "Jeans"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := col.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := col.Delete(ctx, id); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if err := col.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("Delete of absent id failed: %v", err)
	}

	if _, err := col.GetByID(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDurabilityAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	id, err := first.Collection("orders").Add(ctx, store.Record{"orderId": "SW-1", "total": 3198.0})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	second, err := New(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	rec, err := second.Collection("orders").GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID after reopen failed: %v", err)
	}
	if rec["orderId"] != "SW-1" {
		t.Fatalf("orderId = %v", rec["orderId"])
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Collection("products").Add(ctx, store.Record{"name": "x"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	orders, err := s.Collection("orders").GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("orders collection sees products: %+v", orders)
	}
}

func TestConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	col := newTestStore(t).Collection("carts")

	const n = 50
	ids := make(map[string]struct{})
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			id, err := col.Add(ctx, store.Record{"sessionId": "s"})
			if err != nil {
				return err
			}
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Add failed: %v", err)
	}

	if len(ids) != n {
		t.Fatalf("got %d distinct ids, want %d", len(ids), n)
	}
	all, err := col.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != n {
		t.Fatalf("stored %d records, want %d", len(all), n)
	}
}
