// Package view defines the contract between the controller and whatever draws
// the todo list: typed UI events flowing in, typed render commands flowing out.
package view

import (
	"strings"

	"github.com/idilsaglam/tada/internal/model"
)

// View is implemented by every front end the controller can drive.
type View interface {
	Bind(ev Event, h Handler)
	Render(r Render)
}

// Event names a UI-originated action.
type Event int

const (
	NewTodo Event = iota
	ItemEdit
	ItemEditDone
	ItemEditCancel
	ItemRemove
	RemoveCompleted
	Select
)

// Events lists every event a controller subscribes to.
var Events = []Event{NewTodo, ItemEdit, ItemEditDone, ItemEditCancel, ItemRemove, RemoveCompleted, Select}

var eventNames = [...]string{
	NewTodo:         "newTodo",
	ItemEdit:        "itemEdit",
	ItemEditDone:    "itemEditDone",
	ItemEditCancel:  "itemEditCancel",
	ItemRemove:      "itemRemove",
	RemoveCompleted: "removeCompleted",
	Select:          "select",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}

// Payload is what an event carries. NewTodo only sets Title;
// RemoveCompleted sets nothing.
type Payload struct {
	ID        string
	Title     string
	Completed bool
}

// Handler reacts to one event.
type Handler func(Payload)

// Render is a command telling the view to reflect a state change.
type Render interface {
	Command() string
}

// Route is a filter over the list. The zero value means no route has been
// applied yet.
type Route string

const (
	RouteAll       Route = "All"
	RouteActive    Route = "Active"
	RouteCompleted Route = "Completed"
)

// Routes lists the filters in display order.
var Routes = []Route{RouteAll, RouteActive, RouteCompleted}

// Hash is the location fragment that selects r, e.g. "#/active".
func (r Route) Hash() string {
	if r == RouteAll || r == "" {
		return "#/"
	}
	return "#/" + strings.ToLower(string(r))
}

type (
	ShowEntries            struct{ Items []model.Item }
	ClearNewTodo           struct{}
	EditItem               struct{ ID, Title string }
	EditItemDone           struct{ ID, Title string }
	RemoveItem             struct{ ID string }
	UpdateElementCount     struct{ Active int }
	ContentBlockVisibility struct{ Visible bool }
	SetFilter              struct{ Route Route }
	Selected               struct {
		ID        string
		Completed bool
	}
)

func (ShowEntries) Command() string            { return "showEntries" }
func (ClearNewTodo) Command() string           { return "clearNewTodo" }
func (EditItem) Command() string               { return "editItem" }
func (EditItemDone) Command() string           { return "editItemDone" }
func (RemoveItem) Command() string             { return "removeItem" }
func (UpdateElementCount) Command() string     { return "updateElementCount" }
func (ContentBlockVisibility) Command() string { return "contentBlockVisibility" }
func (SetFilter) Command() string              { return "setFilter" }
func (Selected) Command() string               { return "selected" }
