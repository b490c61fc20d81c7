package store

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

type memCollection struct {
	recs map[string]Record
	next int
	fail error
}

func newMemCollection() *memCollection {
	return &memCollection{recs: make(map[string]Record)}
}

func (m *memCollection) Add(ctx context.Context, rec Record) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	m.next++
	id := string(rune('a' + m.next - 1))
	cp := make(Record, len(rec)+1)
	for k, v := range rec {
		cp[k] = v
	}
	cp["id"] = id
	m.recs[id] = cp
	return id, nil
}

func (m *memCollection) GetAll(ctx context.Context) ([]Record, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	out := make([]Record, 0, len(m.recs))
	for _, r := range m.recs {
		out = append(out, r)
	}
	return out, nil
}

func (m *memCollection) GetByID(ctx context.Context, id string) (Record, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	r, ok := m.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *memCollection) Update(ctx context.Context, id string, patch Record) error {
	if m.fail != nil {
		return m.fail
	}
	r, ok := m.recs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range patch {
		r[k] = v
	}
	return nil
}

func (m *memCollection) Delete(ctx context.Context, id string) error {
	if m.fail != nil {
		return m.fail
	}
	delete(m.recs, id)
	return nil
}

type memStore struct {
	cols map[string]*memCollection
}

func newMemStore() *memStore {
	return &memStore{cols: make(map[string]*memCollection)}
}

func (m *memStore) Collection(name string) Collection {
	if c, ok := m.cols[name]; ok {
		return c
	}
	c := newMemCollection()
	m.cols[name] = c
	return c
}

func (m *memStore) col(name string) *memCollection {
	m.Collection(name)
	return m.cols[name]
}

func TestFallbackPrefersRemote(t *testing.T) {
	ctx := context.Background()
	remote := newMemStore()
	localStore := newMemStore()
	fb := NewFallback(remote, localStore, slog.Default())

	id, err := fb.Collection("products").Add(ctx, Record{"name": "Hoodie"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if len(remote.col("products").recs) != 1 {
		t.Fatal("record not written to remote")
	}
	if len(localStore.col("products").recs) != 0 {
		t.Fatal("record leaked to local while remote is healthy")
	}

	rec, err := fb.Collection("products").GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if rec["name"] != "Hoodie" {
		t.Fatalf("name = %v", rec["name"])
	}
}

func TestFallbackFailsOverPerCall(t *testing.T) {
	ctx := context.Background()
	remote := newMemStore()
	localStore := newMemStore()
	fb := NewFallback(remote, localStore, slog.Default())

	remote.col("orders").fail = errors.New("deadline exceeded")

	id, err := fb.Collection("orders").Add(ctx, Record{"orderId": "SW-1"})
	if err != nil {
		t.Fatalf("Add should have fallen back, got: %v", err)
	}
	if len(localStore.col("orders").recs) != 1 {
		t.Fatal("record not written to local fallback")
	}

	recs, err := fb.Collection("orders").GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll should have fallen back, got: %v", err)
	}
	if len(recs) != 1 || recs[0]["orderId"] != "SW-1" {
		t.Fatalf("fallback read returned %+v", recs)
	}

	if _, err := fb.Collection("orders").GetByID(ctx, id); err != nil {
		t.Fatalf("GetByID should have fallen back, got: %v", err)
	}
}

func TestFallbackNotFoundIsDefinitive(t *testing.T) {
	ctx := context.Background()
	remote := newMemStore()
	localStore := newMemStore()
	fb := NewFallback(remote, localStore, slog.Default())

	// Local has a doc the remote does not; a remote NotFound must not be
	// papered over with the stale local copy.
	if _, err := localStore.Collection("products").Add(ctx, Record{"name": "stale"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, err := fb.Collection("products").GetByID(ctx, "a")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound from remote", err)
	}
}

func TestEncodeDecode(t *testing.T) {
	type widget struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	rec, err := Encode(widget{Name: "Hoodie", Price: 3499})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if rec["name"] != "Hoodie" || rec["price"] != 3499.0 {
		t.Fatalf("rec = %+v", rec)
	}

	var got widget
	if err := Decode(rec, &got); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != (widget{Name: "Hoodie", Price: 3499}) {
		t.Fatalf("got = %+v", got)
	}
}
