package model

import (
	"strings"
	"time"
)

// Item is the domain model for a todo entry.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// Counts summarises the store for the footer.
type Counts struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Patch carries the fields an update touches; nil means unchanged.
type Patch struct {
	Title     *string
	Completed *bool
}

// Apply writes the set fields of p onto it.
func (p Patch) Apply(it *Item) {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Completed != nil {
		it.Completed = *p.Completed
	}
}

// SetTitle returns a patch that only changes the title.
func SetTitle(title string) Patch { return Patch{Title: &title} }

// SetCompleted returns a patch that only changes the completed flag.
func SetCompleted(completed bool) Patch { return Patch{Completed: &completed} }

// Query selects items on read. The zero value matches everything.
type Query struct {
	ID        string
	Completed *bool
}

// All matches every item.
func All() Query { return Query{} }

// ByID matches the single item with the given identifier.
func ByID(id string) Query { return Query{ID: id} }

// ByCompleted matches items whose completed flag equals completed.
func ByCompleted(completed bool) Query { return Query{Completed: &completed} }

// Match reports whether it satisfies q.
func (q Query) Match(it Item) bool {
	if q.ID != "" && q.ID != it.ID {
		return false
	}
	if q.Completed != nil && *q.Completed != it.Completed {
		return false
	}
	return true
}

// Tally counts items the way GetCount reports them.
func Tally(items []Item) Counts {
	var c Counts
	for _, it := range items {
		if it.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	c.Total = len(items)
	return c
}

// NormalizeTitle trims the title the way stores persist it.
func NormalizeTitle(title string) string { return strings.TrimSpace(title) }
