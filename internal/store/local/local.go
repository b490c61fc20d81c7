package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/solowear/storefront/internal/store"
)

// Store keeps each collection in a JSON file under the data directory.
// It backs the storefront when the remote database is unreachable, and
// doubles as the persistence layer in tests and local development.
type Store struct {
	dir string

	mu   sync.RWMutex
	data map[string][]store.Record
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local store: create data dir: %w", err)
	}
	return &Store{
		dir:  dir,
		data: make(map[string][]store.Record),
	}, nil
}

func (s *Store) Collection(name string) store.Collection {
	return &collection{store: s, name: name}
}

type collection struct {
	store *Store
	name  string
}

func (c *collection) Add(_ context.Context, rec store.Record) (string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	recs, err := c.store.loadLocked(c.name)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	cp := cloneRecord(rec)
	cp["id"] = id

	recs = append(recs, cp)
	if err := c.store.saveLocked(c.name, recs); err != nil {
		return "", err
	}
	return id, nil
}

func (c *collection) GetAll(_ context.Context) ([]store.Record, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	recs, err := c.store.loadReadLocked(c.name)
	if err != nil {
		return nil, err
	}

	out := make([]store.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, cloneRecord(r))
	}
	return out, nil
}

func (c *collection) GetByID(_ context.Context, id string) (store.Record, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	recs, err := c.store.loadReadLocked(c.name)
	if err != nil {
		return nil, err
	}

	for _, r := range recs {
		if r["id"] == id {
			return cloneRecord(r), nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *collection) Update(_ context.Context, id string, patch store.Record) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	recs, err := c.store.loadLocked(c.name)
	if err != nil {
		return err
	}

	for i, r := range recs {
		if r["id"] != id {
			continue
		}
		for k, v := range patch {
			if k == "id" {
				continue
			}
			recs[i][k] = v
		}
		return c.store.saveLocked(c.name, recs)
	}
	return store.ErrNotFound
}

// Delete is idempotent: deleting an absent document is not an error.
func (c *collection) Delete(_ context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	recs, err := c.store.loadLocked(c.name)
	if err != nil {
		return err
	}

	kept := recs[:0]
	for _, r := range recs {
		if r["id"] != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recs) {
		return nil
	}
	return c.store.saveLocked(c.name, kept)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) loadLocked(name string) ([]store.Record, error) {
	if recs, ok := s.data[name]; ok {
		return recs, nil
	}

	raw, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		s.data[name] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("local store: read %s: %w", name, err)
	}

	var recs []store.Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("local store: decode %s: %w", name, err)
	}
	s.data[name] = recs
	return recs, nil
}

// loadReadLocked serves reads from cache without touching disk when the
// collection is already loaded; a cold read under RLock is safe because
// the file itself is only replaced atomically.
func (s *Store) loadReadLocked(name string) ([]store.Record, error) {
	if recs, ok := s.data[name]; ok {
		return recs, nil
	}

	raw, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("local store: read %s: %w", name, err)
	}

	var recs []store.Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("local store: decode %s: %w", name, err)
	}
	return recs, nil
}

func (s *Store) saveLocked(name string, recs []store.Record) error {
	s.data[name] = recs

	raw, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("local store: encode %s: %w", name, err)
	}

	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("local store: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("local store: replace %s: %w", name, err)
	}
	return nil
}

func cloneRecord(rec store.Record) store.Record {
	cp := make(store.Record, len(rec))
	for k, v := range rec {
		cp[k] = v
	}
	return cp
}
