package controller

import (
	"fmt"
	"strconv"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/view"
)

// memModel is an in-memory Model that records each call by name.
type memModel struct {
	items []model.Item
	next  int
	calls []string

	// Arguments exactly as the controller passed them.
	titles  []string
	patches []model.Patch
}

func (m *memModel) count(name string) int {
	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (m *memModel) Create(title string, done func(model.Item, error)) {
	m.calls = append(m.calls, "create")
	m.titles = append(m.titles, title)
	m.next++
	it := model.Item{ID: strconv.Itoa(m.next), Title: title}
	m.items = append(m.items, it)
	done(it, nil)
}

func (m *memModel) Read(q model.Query, done func([]model.Item, error)) {
	m.calls = append(m.calls, "read")
	out := []model.Item{}
	for _, it := range m.items {
		if q.Match(it) {
			out = append(out, it)
		}
	}
	done(out, nil)
}

func (m *memModel) Update(id string, p model.Patch, done func(error)) {
	m.calls = append(m.calls, "update")
	m.patches = append(m.patches, p)
	for i := range m.items {
		if m.items[i].ID == id {
			p.Apply(&m.items[i])
			done(nil)
			return
		}
	}
	done(fmt.Errorf("update %s: %w", id, model.ErrNotFound))
}

func (m *memModel) Remove(id string, done func(error)) {
	m.calls = append(m.calls, "remove")
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			done(nil)
			return
		}
	}
	done(fmt.Errorf("remove %s: %w", id, model.ErrNotFound))
}

func (m *memModel) GetCount(done func(model.Counts, error)) {
	m.calls = append(m.calls, "count")
	done(model.Tally(m.items), nil)
}

// recView keeps every render it receives.
type recView struct {
	view.Bus
	renders []view.Render
}

func (v *recView) Render(r view.Render) { v.renders = append(v.renders, r) }

func (v *recView) reset() { v.renders = nil }

func (v *recView) commands() []string {
	out := make([]string, 0, len(v.renders))
	for _, r := range v.renders {
		out = append(out, r.Command())
	}
	return out
}

// last returns the most recent render of type T.
func last[T view.Render](v *recView) (T, bool) {
	var zero T
	for i := len(v.renders) - 1; i >= 0; i-- {
		if r, ok := v.renders[i].(T); ok {
			return r, true
		}
	}
	return zero, false
}

func newHarness(items ...model.Item) (*Controller, *memModel, *recView) {
	m := &memModel{items: items, next: len(items)}
	v := &recView{}
	return New(m, v), m, v
}
