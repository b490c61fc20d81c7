package docstore

import (
	"context"
	"testing"

	"github.com/solowear/storefront/internal/cart/domain"
	"github.com/solowear/storefront/internal/store/local"
)

func newRepo(t *testing.T) *CartRepo {
	t.Helper()
	s, err := local.New(t.TempDir())
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	return NewCartRepo(s)
}

func TestGetUnknownSessionReturnsEmptyCart(t *testing.T) {
	repo := newRepo(t)

	cart, err := repo.Get(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart, got %+v", cart.Lines)
	}
	if cart.SessionID != "fresh" {
		t.Fatalf("session id = %q", cart.SessionID)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	cart := domain.Cart{SessionID: "s1"}
	cart.Add(domain.Line{ProductID: "p1", Name: "Premium T-Shirt", Price: 1999, SalePrice: 1499, Quantity: 2, Size: "M", Color: "black"})

	saved, err := repo.Save(ctx, cart)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("saved cart has no document id")
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(got.Lines))
	}
	if got.Lines[0].Quantity != 2 || got.Lines[0].Size != "M" {
		t.Fatalf("line = %+v", got.Lines[0])
	}
}

func TestSaveUpdatesSameDocument(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	cart := domain.Cart{SessionID: "s1"}
	cart.Add(domain.Line{ProductID: "p1", Price: 1999, Quantity: 1})
	first, err := repo.Save(ctx, cart)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cart.Add(domain.Line{ProductID: "p2", Price: 2999, Quantity: 1})
	second, err := repo.Save(ctx, cart)
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("save created a second document: %s != %s", first.ID, second.ID)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(got.Lines))
	}
}

func TestSaveClearedCartPersistsEmpty(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	cart := domain.Cart{SessionID: "s1"}
	cart.Add(domain.Line{ProductID: "p1", Price: 1999, Quantity: 3})
	if _, err := repo.Save(ctx, cart); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cart.Clear()
	if _, err := repo.Save(ctx, cart); err != nil {
		t.Fatalf("Save of cleared cart failed: %v", err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.IsEmpty() {
		t.Fatalf("cleared cart came back with lines: %+v", got.Lines)
	}
}
