// Package controller wires a todo model to a view: UI events become model
// operations and model results become render commands.
package controller

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/view"
)

// Model is the callback API the controller drives. *model.Model satisfies it.
type Model interface {
	Create(title string, done func(model.Item, error))
	Read(q model.Query, done func([]model.Item, error))
	Update(id string, p model.Patch, done func(error))
	Remove(id string, done func(error))
	GetCount(done func(model.Counts, error))
}

// Controller mediates between a Model and a View. It is not safe for
// concurrent use; every call must come from the view's event loop.
type Controller struct {
	model Model
	view  view.View
	log   *slog.Logger
	onErr func(op string, err error)

	activeRoute     view.Route
	lastActiveRoute view.Route
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithErrorHandler calls fn for every failed model operation, after it is
// logged. The view still receives no render for the failed step.
func WithErrorHandler(fn func(op string, err error)) Option {
	return func(c *Controller) { c.onErr = fn }
}

// New binds every view event to its handler and returns the controller.
func New(m Model, v view.View, opts ...Option) *Controller {
	c := &Controller{
		model: m,
		view:  v,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	v.Bind(view.NewTodo, func(p view.Payload) { c.AddItem(p.Title) })
	v.Bind(view.ItemEdit, func(p view.Payload) { c.EditItem(p.ID) })
	v.Bind(view.ItemEditDone, func(p view.Payload) { c.EditItemSave(p.ID, p.Title) })
	v.Bind(view.ItemEditCancel, func(p view.Payload) { c.EditItemCancel(p.ID) })
	v.Bind(view.ItemRemove, func(p view.Payload) { c.RemoveItem(p.ID) })
	v.Bind(view.RemoveCompleted, func(view.Payload) { c.RemoveCompleted() })
	v.Bind(view.Select, func(p view.Payload) { c.Selects(p.ID, p.Completed) })
	return c
}

// ActiveRoute is the filter currently applied.
func (c *Controller) ActiveRoute() view.Route { return c.activeRoute }

// AddItem creates an item unless title is blank. The raw title is handed to
// the model, which owns normalisation.
func (c *Controller) AddItem(title string) {
	if strings.TrimSpace(title) == "" {
		return
	}
	c.model.Create(title, func(it model.Item, err error) {
		if err != nil {
			c.fail("create", err)
			return
		}
		c.log.Info("item added", "id", it.ID)
		c.render(view.ClearNewTodo{})
		c.filter(true)
	})
}

// EditItem puts the item into edit mode with its stored title.
func (c *Controller) EditItem(id string) {
	c.readOne(id, func(it model.Item) {
		c.render(view.EditItem{ID: id, Title: it.Title})
	})
}

// EditItemSave stores the new title, or removes the item when the title is blank.
func (c *Controller) EditItemSave(id, title string) {
	if strings.TrimSpace(title) == "" {
		c.RemoveItem(id)
		return
	}
	c.model.Update(id, model.SetTitle(title), func(err error) {
		if err != nil {
			c.fail("update title", err)
			return
		}
		c.render(view.EditItemDone{ID: id, Title: title})
	})
}

// EditItemCancel leaves edit mode showing the stored title.
func (c *Controller) EditItemCancel(id string) {
	c.readOne(id, func(it model.Item) {
		c.render(view.EditItemDone{ID: id, Title: it.Title})
	})
}

// RemoveItem deletes the item, then refreshes counts and the visible list.
func (c *Controller) RemoveItem(id string) {
	c.model.Remove(id, func(err error) {
		if err != nil {
			c.fail("remove", err)
			return
		}
		c.render(view.RemoveItem{ID: id})
		c.filter(false)
	})
}

// RemoveCompleted removes every completed item.
func (c *Controller) RemoveCompleted() {
	c.model.Read(model.ByCompleted(true), func(items []model.Item, err error) {
		if err != nil {
			c.fail("read completed", err)
			return
		}
		for _, it := range items {
			if it.Completed {
				c.RemoveItem(it.ID)
			}
		}
		c.filter(false)
	})
}

// Selects sets the completed flag of an item and refreshes the remaining count.
func (c *Controller) Selects(id string, completed bool) {
	c.model.Update(id, model.SetCompleted(completed), func(err error) {
		if err != nil {
			c.fail("update completed", err)
			return
		}
		c.render(view.Selected{ID: id, Completed: completed})
		c.updateCount()
	})
}

// SetView applies the route named by a location hash such as "#/active".
func (c *Controller) SetView(locationHash string) {
	var page string
	if parts := strings.Split(locationHash, "/"); len(parts) > 1 {
		page = parts[1]
	}
	c.updateFilterState(page)
}

// Refresh recounts and redraws the active route, e.g. after the store
// changed underneath the view.
func (c *Controller) Refresh() {
	if c.activeRoute == "" {
		c.activeRoute = view.RouteAll
	}
	c.filter(true)
}

// ShowAll renders every item.
func (c *Controller) ShowAll() { c.show(model.All()) }

// ShowActive renders items that are not completed.
func (c *Controller) ShowActive() { c.show(model.ByCompleted(false)) }

// ShowCompleted renders completed items.
func (c *Controller) ShowCompleted() { c.show(model.ByCompleted(true)) }

func (c *Controller) show(q model.Query) {
	c.model.Read(q, func(items []model.Item, err error) {
		if err != nil {
			c.fail("read", err)
			return
		}
		c.render(view.ShowEntries{Items: items})
	})
}

func (c *Controller) updateCount() {
	c.model.GetCount(func(n model.Counts, err error) {
		if err != nil {
			c.fail("count", err)
			return
		}
		c.render(view.UpdateElementCount{Active: n.Active})
		c.render(view.ContentBlockVisibility{Visible: n.Total > 0})
	})
}

// filter refreshes the counts and redraws the list for the active route.
// Staying on All skips the redraw: the view already applied the single-item
// change itself.
func (c *Controller) filter(force bool) {
	route := c.activeRoute
	c.updateCount()

	if force || c.lastActiveRoute != view.RouteAll || route != view.RouteAll {
		switch route {
		case view.RouteActive:
			c.ShowActive()
		case view.RouteCompleted:
			c.ShowCompleted()
		default:
			c.ShowAll()
		}
	}
	c.lastActiveRoute = route
}

func (c *Controller) updateFilterState(page string) {
	route, err := ParseRoute(page)
	if err != nil {
		c.log.Warn("unknown route, showing all", "page", page)
	}
	c.activeRoute = route
	c.filter(false)
	c.render(view.SetFilter{Route: route})
}

// readOne reads a single item and hands it to fn. An id that does not
// resolve is logged as model.ErrNotFound and nothing is rendered.
func (c *Controller) readOne(id string, fn func(model.Item)) {
	c.model.Read(model.ByID(id), func(items []model.Item, err error) {
		if err != nil {
			c.fail("read", err)
			return
		}
		if len(items) == 0 {
			c.fail("read", fmt.Errorf("item %s: %w", id, model.ErrNotFound))
			return
		}
		fn(items[0])
	})
}

func (c *Controller) render(r view.Render) {
	c.log.Debug("render", "cmd", r.Command())
	c.view.Render(r)
}

func (c *Controller) fail(op string, err error) {
	c.log.Error("controller", "op", op, "err", err)
	if c.onErr != nil {
		c.onErr(op, err)
	}
}
