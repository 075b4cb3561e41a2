package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/controller"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/view"
)

type harness struct {
	s     *Screen
	c     *controller.Controller
	store *jsonstore.Store
}

func newHarness(t *testing.T, titles ...string) harness {
	t.Helper()
	st, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	for _, title := range titles {
		_, err := st.Create(context.Background(), title)
		require.NoError(t, err)
	}
	s := New(Options{Theme: "mono"})
	c := controller.New(model.New(context.Background(), st, nil), s)
	s.OnRoute(c.SetView)
	s.OnRefresh(c.Refresh)
	c.SetView("#/")
	return harness{s: s, c: c, store: st}
}

func (h harness) press(keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		h.s.Update(msg)
	}
}

func (h harness) stored(t *testing.T) []model.Item {
	t.Helper()
	items, err := h.store.Find(context.Background(), model.All())
	require.NoError(t, err)
	return items
}

func (h harness) titles() []string {
	var out []string
	for _, it := range h.s.list.Items() {
		out = append(out, it.(listItem).Item.Title)
	}
	return out
}

func TestAddThroughInput(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.s.visible)

	h.press("a", "Buy milk", "enter")

	assert.False(t, h.s.adding)
	assert.Equal(t, "", h.s.ti.Value())
	assert.Equal(t, []string{"Buy milk"}, h.titles())
	assert.True(t, h.s.visible)
	assert.Equal(t, 1, h.s.active)
}

func TestAddBlankKeepsInputOpen(t *testing.T) {
	h := newHarness(t)
	h.press("a", "   ", "enter")
	assert.True(t, h.s.adding)
	assert.Empty(t, h.stored(t))

	h.press("esc")
	assert.False(t, h.s.adding)
}

func TestToggleAndDelete(t *testing.T) {
	h := newHarness(t, "Buy milk", "Walk dog")

	h.press(" ")
	items := h.stored(t)
	assert.True(t, items[0].Completed)
	assert.True(t, h.s.list.Items()[0].(listItem).Completed)

	h.press("d")
	assert.Equal(t, []string{"Walk dog"}, h.titles())
	assert.Len(t, h.stored(t), 1)
}

func TestEditSaveAndCancel(t *testing.T) {
	h := newHarness(t, "Buy milk")

	h.press("e")
	require.True(t, h.s.editing)
	assert.Equal(t, "Buy milk", h.s.ti.Value())

	h.s.ti.SetValue("Buy oat milk")
	h.press("enter")
	assert.False(t, h.s.editing)
	assert.Equal(t, []string{"Buy oat milk"}, h.titles())
	assert.Equal(t, "Buy oat milk", h.stored(t)[0].Title)

	h.press("e")
	h.s.ti.SetValue("scrap this")
	h.press("esc")
	assert.False(t, h.s.editing)
	assert.Equal(t, []string{"Buy oat milk"}, h.titles())
}

func TestEditToBlankRemoves(t *testing.T) {
	h := newHarness(t, "Buy milk")
	h.press("e")
	h.s.ti.SetValue("  ")
	h.press("enter")
	assert.False(t, h.s.editing)
	assert.Empty(t, h.titles())
	assert.Empty(t, h.stored(t))
	assert.False(t, h.s.visible)
}

func TestFilterKeys(t *testing.T) {
	h := newHarness(t, "open", "closed")
	h.press("j", " ") // complete the second item
	require.True(t, h.stored(t)[1].Completed)

	h.press("2")
	assert.Equal(t, view.RouteActive, h.s.route)
	assert.Equal(t, []string{"open"}, h.titles())

	h.press("tab")
	assert.Equal(t, view.RouteCompleted, h.s.route)
	assert.Equal(t, []string{"closed"}, h.titles())

	h.press("1")
	assert.Equal(t, []string{"open", "closed"}, h.titles())
}

func TestClearCompleted(t *testing.T) {
	h := newHarness(t, "a", "b", "c")
	h.press(" ", "j", "j", " ")
	h.press("C")
	assert.Equal(t, []string{"b"}, h.titles())
	assert.Len(t, h.stored(t), 1)
}

func TestStoreChangeRefreshes(t *testing.T) {
	h := newHarness(t, "a")
	_, err := h.store.Create(context.Background(), "from elsewhere")
	require.NoError(t, err)

	h.s.watchPath = ""
	h.s.Update(storeChangedMsg{})
	assert.Equal(t, []string{"a", "from elsewhere"}, h.titles())
}

func TestViewShowsEmptyState(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.s.View(), "Nothing to do")
}

func quits(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if quits(c) {
				return true
			}
		}
	}
	return false
}

func TestEditOfVanishedItemLeavesInputMode(t *testing.T) {
	cases := []struct {
		name  string
		value string
		key   string
	}{
		{"cancel", "", "esc"},
		{"save", "Buy oat milk", "enter"},
		{"save blank", "  ", "enter"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, "Buy milk")
			h.press("e")
			require.True(t, h.s.editing)

			require.NoError(t, h.store.Remove(context.Background(), h.stored(t)[0].ID))
			if tc.value != "" {
				h.s.ti.SetValue(tc.value)
			}
			h.press(tc.key)

			assert.False(t, h.s.editing)
			assert.Equal(t, "", h.s.editID)
			assert.Empty(t, h.stored(t))
		})
	}
}

func TestFailedSaveReloadsList(t *testing.T) {
	h := newHarness(t, "Buy milk")
	h.press("e")
	require.NoError(t, h.store.Remove(context.Background(), h.stored(t)[0].ID))

	h.s.ti.SetValue("Buy oat milk")
	h.press("enter")
	assert.False(t, h.s.editing)
	assert.Empty(t, h.titles())
	assert.False(t, h.s.visible)
}

func TestRefreshWithoutEditedItemStopsEditing(t *testing.T) {
	h := newHarness(t, "Buy milk", "Walk dog")
	h.press("e")
	require.True(t, h.s.editing)

	require.NoError(t, h.store.Remove(context.Background(), h.stored(t)[0].ID))
	h.s.watchPath = ""
	h.s.Update(storeChangedMsg{})

	assert.False(t, h.s.editing)
	assert.Equal(t, []string{"Walk dog"}, h.titles())
}

func TestCtrlCQuitsWhileEditing(t *testing.T) {
	h := newHarness(t, "Buy milk")
	h.press("e")
	require.True(t, h.s.editing)

	_, cmd := h.s.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, quits(cmd))

	h.press("esc", "a")
	require.True(t, h.s.adding)
	_, cmd = h.s.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, quits(cmd))
}
