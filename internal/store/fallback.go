package store

import (
	"context"
	"errors"
	"log/slog"
)

// Fallback prefers the remote backend and falls back to the local one
// per call when the remote fails, so callers never see an outage.
// ErrNotFound from the remote is a definitive answer, not a failure.
type Fallback struct {
	remote Store
	local  Store
	log    *slog.Logger
}

func NewFallback(remote, local Store, log *slog.Logger) *Fallback {
	return &Fallback{remote: remote, local: local, log: log}
}

func (f *Fallback) Collection(name string) Collection {
	return &fallbackCollection{
		name:   name,
		remote: f.remote.Collection(name),
		local:  f.local.Collection(name),
		log:    f.log,
	}
}

type fallbackCollection struct {
	name   string
	remote Collection
	local  Collection
	log    *slog.Logger
}

func (c *fallbackCollection) Add(ctx context.Context, rec Record) (string, error) {
	id, err := c.remote.Add(ctx, rec)
	if err == nil {
		return id, nil
	}
	c.warn("add", err)
	return c.local.Add(ctx, rec)
}

func (c *fallbackCollection) GetAll(ctx context.Context) ([]Record, error) {
	recs, err := c.remote.GetAll(ctx)
	if err == nil {
		return recs, nil
	}
	c.warn("get_all", err)
	return c.local.GetAll(ctx)
}

func (c *fallbackCollection) GetByID(ctx context.Context, id string) (Record, error) {
	rec, err := c.remote.GetByID(ctx, id)
	if err == nil || errors.Is(err, ErrNotFound) {
		return rec, err
	}
	c.warn("get_by_id", err)
	return c.local.GetByID(ctx, id)
}

func (c *fallbackCollection) Update(ctx context.Context, id string, patch Record) error {
	err := c.remote.Update(ctx, id, patch)
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	c.warn("update", err)
	return c.local.Update(ctx, id, patch)
}

func (c *fallbackCollection) Delete(ctx context.Context, id string) error {
	err := c.remote.Delete(ctx, id)
	if err == nil {
		return nil
	}
	c.warn("delete", err)
	return c.local.Delete(ctx, id)
}

func (c *fallbackCollection) warn(op string, err error) {
	c.log.Warn("remote store failed, using local fallback",
		slog.String("collection", c.name),
		slog.String("op", op),
		slog.Any("err", err),
	)
}
