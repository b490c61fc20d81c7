package firestore

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/solowear/storefront/internal/store"
)

// Store serves collections from Firestore. Document ids are assigned by
// Firestore on Add and surfaced back in the "id" field on reads.
type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Collection(name string) store.Collection {
	return &collection{col: s.client.Collection(name)}
}

type collection struct {
	col *firestore.CollectionRef
}

func (c *collection) Add(ctx context.Context, rec store.Record) (string, error) {
	data := make(map[string]any, len(rec))
	for k, v := range rec {
		if k == "id" {
			continue
		}
		data[k] = v
	}

	ref, _, err := c.col.Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("firestore add %s: %w", c.col.ID, err)
	}
	return ref.ID, nil
}

func (c *collection) GetAll(ctx context.Context) ([]store.Record, error) {
	snaps, err := c.col.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore list %s: %w", c.col.ID, err)
	}

	out := make([]store.Record, 0, len(snaps))
	for _, snap := range snaps {
		rec := store.Record(snap.Data())
		rec["id"] = snap.Ref.ID
		out = append(out, rec)
	}
	return out, nil
}

func (c *collection) GetByID(ctx context.Context, id string) (store.Record, error) {
	snap, err := c.col.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("firestore get %s/%s: %w", c.col.ID, id, err)
	}

	rec := store.Record(snap.Data())
	rec["id"] = snap.Ref.ID
	return rec, nil
}

func (c *collection) Update(ctx context.Context, id string, patch store.Record) error {
	updates := make([]firestore.Update, 0, len(patch))
	for k, v := range patch {
		if k == "id" {
			continue
		}
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	// Stable order keeps retried writes identical.
	sort.Slice(updates, func(i, j int) bool { return updates[i].Path < updates[j].Path })

	if _, err := c.col.Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return store.ErrNotFound
		}
		return fmt.Errorf("firestore update %s/%s: %w", c.col.ID, id, err)
	}
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	if _, err := c.col.Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s/%s: %w", c.col.ID, id, err)
	}
	return nil
}
