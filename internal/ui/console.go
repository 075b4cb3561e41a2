package ui

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/view"
)

const maxTitleWidth = 80

// Console is a non-interactive view for scripted subcommands. It folds render
// commands into a snapshot and prints it as a panel on Flush.
type Console struct {
	view.Bus

	Group bool // print pending and done in separate sections

	entries []model.Item
	active  int
	visible bool
	route   view.Route
	editing *view.EditItem
	notes   []string
}

// NewConsole returns an empty console view.
func NewConsole() *Console { return &Console{} }

// Render implements view.View.
func (c *Console) Render(r view.Render) {
	switch r := r.(type) {
	case view.ShowEntries:
		c.entries = append(c.entries[:0], r.Items...)
	case view.ClearNewTodo:
		c.notes = append(c.notes, "added")
	case view.EditItem:
		e := r
		c.editing = &e
	case view.EditItemDone:
		c.editing = nil
		c.update(r.ID, func(it *model.Item) { it.Title = r.Title })
		c.notes = append(c.notes, "saved")
	case view.RemoveItem:
		for i, it := range c.entries {
			if it.ID == r.ID {
				c.entries = append(c.entries[:i], c.entries[i+1:]...)
				break
			}
		}
		c.notes = append(c.notes, "removed")
	case view.UpdateElementCount:
		c.active = r.Active
	case view.ContentBlockVisibility:
		c.visible = r.Visible
	case view.SetFilter:
		c.route = r.Route
	case view.Selected:
		c.update(r.ID, func(it *model.Item) { it.Completed = r.Completed })
		if r.Completed {
			c.notes = append(c.notes, "completed")
		} else {
			c.notes = append(c.notes, "reopened")
		}
	}
}

func (c *Console) update(id string, fn func(*model.Item)) {
	for i := range c.entries {
		if c.entries[i].ID == id {
			fn(&c.entries[i])
			return
		}
	}
}

// Entries is the list currently shown, in display order.
func (c *Console) Entries() []model.Item { return c.entries }

// Editing returns the item in edit mode, if any.
func (c *Console) Editing() (view.EditItem, bool) {
	if c.editing == nil {
		return view.EditItem{}, false
	}
	return *c.editing, true
}

// At resolves a 1-based index against the entries as printed.
func (c *Console) At(userIndex int) (model.Item, error) {
	items := c.ordered()
	if userIndex < 1 || userIndex > len(items) {
		return model.Item{}, fmt.Errorf("index out of range: have %d, got %d", len(items), userIndex)
	}
	return items[userIndex-1], nil
}

// ordered is the display order: creation order, or pending before done when grouped.
func (c *Console) ordered() []model.Item {
	if !c.Group {
		return c.entries
	}
	pend, done := split(c.entries)
	return append(pend, done...)
}

func split(items []model.Item) (pend, done []model.Item) {
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	return pend, done
}

// Notes returns the status messages gathered since the last Flush.
func (c *Console) Notes() []string { return c.notes }

// Flush prints status lines and the list panel, then clears the notes.
func (c *Console) Flush(w io.Writer) {
	for _, n := range c.notes {
		OK(w, n)
	}
	c.notes = nil
	Panel(w, c.lines())
}

func (c *Console) lines() []string {
	t := Current()
	route := c.route
	if route == "" {
		route = view.RouteAll
	}
	header := fmt.Sprintf("%s  %s %d left  %s",
		C(t.Title, "Todos"),
		C(t.Pending, t.SymPending), c.active,
		C(t.Accent, "["+string(route)+"]"),
	)

	lines := []string{header}
	if route == view.RouteAll && len(c.entries) > 0 {
		done := len(c.entries) - c.active
		lines = append(lines, C(t.Muted, ProgressBar(done, len(c.entries), 28)))
	}
	lines = append(lines, "")

	switch {
	case !c.visible:
		lines = append(lines, C(t.Muted, "nothing to do"))
	case c.Group:
		lines = append(lines, groupLines(c.entries)...)
	default:
		lines = append(lines, flatLines(c.entries, 1)...)
	}
	lines = append(lines, "")
	lines = append(lines, C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func flatLines(items []model.Item, first int) []string {
	t := Current()
	if len(items) == 0 {
		return []string{C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", first+i)
		box, color := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, color = t.BoxChecked, t.Success
		}
		title := runewidth.Truncate(it.Title, maxTitleWidth, "...")
		out = append(out, fmt.Sprintf("%s %s %s", C(t.Muted, idx), C(color, box), title))
	}
	return out
}

func groupLines(items []model.Item) []string {
	t := Current()
	pend, done := split(items)
	var lines []string
	lines = append(lines, C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend, 1)...)
	}
	lines = append(lines, "")
	lines = append(lines, C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done, len(pend)+1)...)
	}
	return lines
}
