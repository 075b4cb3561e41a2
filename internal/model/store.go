package model

import "context"

// Store is a synchronous persistence backend for items.
// Implementations wrap ErrNotFound and ErrValidation so callers can use errors.Is.
type Store interface {
	Create(ctx context.Context, title string) (Item, error)
	Find(ctx context.Context, q Query) ([]Item, error)
	Update(ctx context.Context, id string, p Patch) error
	Remove(ctx context.Context, id string) error
	Count(ctx context.Context) (Counts, error)
	Close() error
}
