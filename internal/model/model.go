package model

import (
	"context"
	"fmt"
	"log/slog"
)

// Model exposes a Store through completion callbacks. Every callback runs on
// the caller's goroutine before the method returns, so a render issued inside
// a callback always observes the persisted state.
type Model struct {
	ctx   context.Context
	store Store
	log   *slog.Logger
}

// New wraps store. A nil logger discards debug output.
func New(ctx context.Context, store Store, log *slog.Logger) *Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Model{ctx: ctx, store: store, log: log}
}

// Create stores a new item; the title is trimmed and must not be blank.
func (m *Model) Create(title string, done func(Item, error)) {
	title = NormalizeTitle(title)
	if title == "" {
		done(Item{}, fmt.Errorf("create: empty title: %w", ErrValidation))
		return
	}
	it, err := m.store.Create(m.ctx, title)
	m.log.Debug("model create", "id", it.ID, "err", err)
	done(it, err)
}

// Read returns the items matching q in creation order.
func (m *Model) Read(q Query, done func([]Item, error)) {
	items, err := m.store.Find(m.ctx, q)
	m.log.Debug("model read", "id", q.ID, "n", len(items), "err", err)
	done(items, err)
}

// Update applies p to the item with the given id.
func (m *Model) Update(id string, p Patch, done func(error)) {
	err := m.store.Update(m.ctx, id, p)
	m.log.Debug("model update", "id", id, "err", err)
	done(err)
}

// Remove deletes the item with the given id.
func (m *Model) Remove(id string, done func(error)) {
	err := m.store.Remove(m.ctx, id)
	m.log.Debug("model remove", "id", id, "err", err)
	done(err)
}

// GetCount reports active and total counts.
func (m *Model) GetCount(done func(Counts, error)) {
	c, err := m.store.Count(m.ctx)
	done(c, err)
}
