package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Record is one persisted document. The "id" field is populated on reads
// and ignored on writes (the backend owns id assignment).
type Record map[string]any

var ErrNotFound = errors.New("store: document not found")

// Collection is the four-method contract every backend satisfies. Core
// services depend on this interface only and never on a concrete backend.
type Collection interface {
	Add(ctx context.Context, rec Record) (string, error)
	GetAll(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, id string, patch Record) error
	Delete(ctx context.Context, id string) error
}

type Store interface {
	Collection(name string) Collection
}

// Encode converts a domain value into a Record via its JSON shape.
func Encode(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Decode converts a Record back into a domain value via its JSON shape.
func Decode(rec Record, v any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
