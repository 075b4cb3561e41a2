// Package tui is the interactive Bubble Tea front end. Screen is both the
// tea.Model and the view the controller renders into; every controller call
// happens inside Update, so the event loop is the only goroutine touching it.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
	"github.com/idilsaglam/tada/internal/view"
)

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct{ model.Item }

func (i listItem) Title() string       { return i.Item.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Item.Title }

// itemDelegate draws one item per line with a check box.
type itemDelegate struct{ st styles }

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box := d.st.muted.Render(t.BoxUnchecked)
	text := it.Item.Title
	if it.Completed {
		box = d.st.success.Render(t.BoxChecked)
		text = d.st.done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.st.selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

// Options configure a Screen.
type Options struct {
	Theme  string
	Logger *slog.Logger
	// WatchPath, when set, is a file whose changes trigger a refresh.
	WatchPath string
}

// Screen is the Bubble Tea model for the todo list.
type Screen struct {
	view.Bus

	list list.Model
	ti   textinput.Model
	keys keyMap
	st   styles
	log  *slog.Logger

	onRoute   func(hash string)
	onRefresh func()
	watchPath string

	adding  bool
	editing bool
	editID  string

	active  int
	visible bool
	route   view.Route
	status  string

	width, height int
	pending       []tea.Cmd
}

// New builds a screen. Wire it to a controller, then call OnRoute and
// OnRefresh before running it.
func New(opt Options) *Screen {
	st := newStyles(opt.Theme)
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{st: st}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = st.title
	l.Styles.HelpStyle = st.help
	l.Styles.PaginationStyle = st.help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200

	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Screen{
		list:      l,
		ti:        ti,
		keys:      keys,
		st:        st,
		log:       log,
		onRoute:   func(string) {},
		onRefresh: func() {},
		watchPath: opt.WatchPath,
		route:     view.RouteAll,
		width:     80,
		height:    24,
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		s.width, s.height = w, h
	}
	s.resize()
	s.title()
	return s
}

// OnRoute sets the function called with a location hash when the filter changes.
func (s *Screen) OnRoute(fn func(hash string)) { s.onRoute = fn }

// OnRefresh sets the function called when the store changed on disk.
func (s *Screen) OnRefresh(fn func()) { s.onRefresh = fn }

// Run starts the program on the alternate screen and blocks until quit.
func (s *Screen) Run() error {
	p := tea.NewProgram(s, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (s *Screen) Init() tea.Cmd {
	if s.watchPath == "" {
		return nil
	}
	return watchFile(s.watchPath, s.log)
}

// Render implements view.View.
func (s *Screen) Render(r view.Render) {
	s.log.Debug("screen render", "cmd", r.Command())
	switch r := r.(type) {
	case view.ShowEntries:
		items := make([]list.Item, 0, len(r.Items))
		for _, it := range r.Items {
			items = append(items, listItem{it})
		}
		if s.editing && !containsID(r.Items, s.editID) {
			s.stopEditing()
		}
		s.queue(s.list.SetItems(items))
	case view.ClearNewTodo:
		s.adding = false
		s.ti.SetValue("")
		s.ti.Blur()
	case view.EditItem:
		s.editing = true
		s.editID = r.ID
		s.ti.SetValue(r.Title)
		s.ti.CursorEnd()
		s.ti.Placeholder = "Edit item title..."
		s.queue(s.ti.Focus())
	case view.EditItemDone:
		if s.editID == r.ID {
			s.stopEditing()
		}
		s.updateItem(r.ID, func(it *model.Item) { it.Title = r.Title })
	case view.RemoveItem:
		if s.editing && s.editID == r.ID {
			s.stopEditing()
		}
		if i := s.indexOf(r.ID); i >= 0 {
			s.list.RemoveItem(i)
		}
	case view.UpdateElementCount:
		s.active = r.Active
		s.title()
	case view.ContentBlockVisibility:
		s.visible = r.Visible
	case view.SetFilter:
		s.route = r.Route
		s.title()
	case view.Selected:
		s.updateItem(r.ID, func(it *model.Item) { it.Completed = r.Completed })
	}
}

func (s *Screen) queue(cmd tea.Cmd) {
	if cmd != nil {
		s.pending = append(s.pending, cmd)
	}
}

func (s *Screen) flush(cmd tea.Cmd) tea.Cmd {
	s.queue(cmd)
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *Screen) indexOf(id string) int {
	for i, it := range s.list.Items() {
		if li, ok := it.(listItem); ok && li.ID == id {
			return i
		}
	}
	return -1
}

func (s *Screen) updateItem(id string, fn func(*model.Item)) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	li := s.list.Items()[i].(listItem)
	fn(&li.Item)
	s.queue(s.list.SetItem(i, li))
}

func containsID(items []model.Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (s *Screen) stopEditing() {
	s.editing = false
	s.editID = ""
	s.ti.SetValue("")
	s.ti.Placeholder = "What needs to be done?"
	s.ti.Blur()
}

func (s *Screen) selected() (model.Item, bool) {
	li, ok := s.list.SelectedItem().(listItem)
	return li.Item, ok
}

func (s *Screen) title() {
	word := "items"
	if s.active == 1 {
		word = "item"
	}
	var tabs []string
	for _, r := range view.Routes {
		st := s.st.tab
		if r == s.route {
			st = s.st.tabActive
		}
		tabs = append(tabs, st.Render(string(r)))
	}
	s.list.Title = fmt.Sprintf("%s  %s %d %s left  %s",
		s.st.title.Render("Todos"),
		s.st.pending.Render("•"), s.active, word,
		strings.Join(tabs, ""),
	)
}

func (s *Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.resize()
		return s, nil
	case storeChangedMsg:
		s.log.Debug("store changed on disk")
		s.onRefresh()
		if s.watchPath == "" {
			return s, s.flush(nil)
		}
		return s, s.flush(watchFile(s.watchPath, s.log))
	case watchErrMsg:
		s.log.Warn("stopped watching store", "err", msg.err)
		return s, nil
	case tea.KeyMsg:
		if s.adding || s.editing {
			return s, s.flush(s.updateInput(msg))
		}
		if s.list.FilterState() == list.Filtering {
			break
		}
		if cmd, handled := s.handleKey(msg); handled {
			return s, s.flush(cmd)
		}
	}
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, s.flush(cmd)
}

func (s *Screen) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "enter":
		if s.adding {
			s.Emit(view.NewTodo, view.Payload{Title: s.ti.Value()})
			return nil
		}
		s.Emit(view.ItemEditDone, view.Payload{ID: s.editID, Title: s.ti.Value()})
		if s.editing {
			// Nothing was rendered back, so the item is gone from the store.
			s.stopEditing()
			s.onRefresh()
		}
		return nil
	case "esc":
		if s.adding {
			s.adding = false
			s.ti.SetValue("")
			s.ti.Blur()
			return nil
		}
		s.Emit(view.ItemEditCancel, view.Payload{ID: s.editID})
		s.stopEditing()
		return nil
	}
	var cmd tea.Cmd
	s.ti, cmd = s.ti.Update(msg)
	return cmd
}

func (s *Screen) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s.status = ""
	switch {
	case key.Matches(msg, s.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, s.keys.Add):
		s.adding = true
		s.ti.SetValue("")
		s.ti.Placeholder = "What needs to be done?"
		return s.ti.Focus(), true
	case key.Matches(msg, s.keys.Edit):
		if it, ok := s.selected(); ok {
			s.Emit(view.ItemEdit, view.Payload{ID: it.ID, Title: it.Title, Completed: it.Completed})
		}
		return nil, true
	case key.Matches(msg, s.keys.Toggle):
		if it, ok := s.selected(); ok {
			s.Emit(view.Select, view.Payload{ID: it.ID, Title: it.Title, Completed: !it.Completed})
		}
		return nil, true
	case key.Matches(msg, s.keys.Remove):
		if it, ok := s.selected(); ok {
			s.Emit(view.ItemRemove, view.Payload{ID: it.ID})
		}
		return nil, true
	case key.Matches(msg, s.keys.ClearDone):
		s.Emit(view.RemoveCompleted, view.Payload{})
		return nil, true
	case key.Matches(msg, s.keys.All):
		s.onRoute(view.RouteAll.Hash())
		return nil, true
	case key.Matches(msg, s.keys.Active):
		s.onRoute(view.RouteActive.Hash())
		return nil, true
	case key.Matches(msg, s.keys.Completed):
		s.onRoute(view.RouteCompleted.Hash())
		return nil, true
	case key.Matches(msg, s.keys.NextFilter):
		s.onRoute(s.nextRoute().Hash())
		return nil, true
	case key.Matches(msg, s.keys.Copy):
		if it, ok := s.selected(); ok {
			if err := clipboard.WriteAll(it.Title); err != nil {
				s.status = s.st.errorText.Render("copy failed: " + err.Error())
			} else {
				s.status = s.st.success.Render("copied")
			}
		}
		return nil, true
	case key.Matches(msg, s.keys.Refresh):
		s.onRefresh()
		return nil, true
	}
	return nil, false
}

func (s *Screen) nextRoute() view.Route {
	for i, r := range view.Routes {
		if r == s.route {
			return view.Routes[(i+1)%len(view.Routes)]
		}
	}
	return view.RouteAll
}

func (s *Screen) resize() {
	listHeight := s.height - 4
	if s.adding || s.editing {
		listHeight = s.height - 8
	}
	s.list.SetSize(s.width-4, max(listHeight, 1))
}

func (s *Screen) View() string {
	s.resize()

	content := s.list.View()
	if !s.visible && !s.adding {
		content = s.list.Title + "\n\n" + s.st.muted.Render("Nothing to do. Press a to add an item.")
	}
	if s.adding || s.editing {
		label := "Add new item"
		if s.editing {
			label = "Edit item (enter to save, esc to cancel)"
		}
		content += "\n" + s.st.bar.Render(label+"\n"+s.ti.View())
	}
	if s.status != "" {
		content += "\n" + s.status
	}
	return s.st.panel.Render(content)
}

var (
	_ view.View = (*Screen)(nil)
	_ tea.Model = (*Screen)(nil)
)
