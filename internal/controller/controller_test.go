package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/view"
)

func TestNewBindsEveryEvent(t *testing.T) {
	_, _, v := newHarness()
	for _, ev := range view.Events {
		assert.True(t, v.Bound(ev), ev.String())
	}
}

func TestAddItemIgnoresBlankTitles(t *testing.T) {
	for _, title := range []string{"", " ", "\t\n", "   \t  "} {
		c, m, v := newHarness()
		c.AddItem(title)
		assert.Zero(t, m.count("create"), "%q", title)
		assert.Empty(t, v.renders)
	}
}

func TestAddItemCreatesClearsAndRerenders(t *testing.T) {
	c, m, v := newHarness()
	c.SetView("#/")
	v.reset()

	c.AddItem("Buy milk")

	assert.Equal(t, 1, m.count("create"))
	assert.Equal(t, []string{
		"clearNewTodo", "updateElementCount", "contentBlockVisibility", "showEntries",
	}, v.commands())

	entries, ok := last[view.ShowEntries](v)
	require.True(t, ok)
	require.Len(t, entries.Items, 1)
	assert.Equal(t, "Buy milk", entries.Items[0].Title)
	assert.False(t, entries.Items[0].Completed)
}

func TestAddItemPassesRawTitle(t *testing.T) {
	c, m, _ := newHarness()
	c.AddItem(" Buy milk ")
	assert.Equal(t, []string{" Buy milk "}, m.titles)
}

func TestAddItemViaEvent(t *testing.T) {
	c, m, v := newHarness()
	c.SetView("")
	v.Emit(view.NewTodo, view.Payload{Title: "Walk dog"})
	require.Len(t, m.items, 1)
	assert.Equal(t, "Walk dog", m.items[0].Title)
}

func TestEditItem(t *testing.T) {
	c, _, v := newHarness(model.Item{ID: "1", Title: "Read"})
	c.EditItem("1")
	assert.Equal(t, []view.Render{view.EditItem{ID: "1", Title: "Read"}}, v.renders)
}

func TestEditItemUnknownIDRendersNothing(t *testing.T) {
	c, _, v := newHarness(model.Item{ID: "1", Title: "Read"})
	c.EditItem("42")
	c.EditItemCancel("42")
	assert.Empty(t, v.renders)
}

func TestEditItemSaveBlankRemoves(t *testing.T) {
	for _, title := range []string{"", "  "} {
		c, m, v := newHarness(model.Item{ID: "1", Title: "Read"})
		c.EditItemSave("1", title)
		assert.Equal(t, 1, m.count("remove"))
		assert.Zero(t, m.count("update"))
		assert.Contains(t, v.renders, view.Render(view.RemoveItem{ID: "1"}))
		assert.Empty(t, m.items)
	}
}

func TestEditItemSaveUpdatesTitle(t *testing.T) {
	c, m, v := newHarness(model.Item{ID: "1", Title: "Read"})
	c.EditItemSave("1", "Read a book")
	assert.Equal(t, 1, m.count("update"))
	assert.Zero(t, m.count("remove"))
	assert.Equal(t, []view.Render{view.EditItemDone{ID: "1", Title: "Read a book"}}, v.renders)
	assert.Equal(t, "Read a book", m.items[0].Title)
}

func TestEditItemSavePassesRawTitle(t *testing.T) {
	c, m, v := newHarness(model.Item{ID: "1", Title: "Read"})
	c.EditItemSave("1", " x ")
	require.Len(t, m.patches, 1)
	require.NotNil(t, m.patches[0].Title)
	assert.Equal(t, " x ", *m.patches[0].Title)
	assert.Nil(t, m.patches[0].Completed)
	assert.Equal(t, []view.Render{view.EditItemDone{ID: "1", Title: " x "}}, v.renders)
}

func TestEditItemCancelKeepsOriginal(t *testing.T) {
	_, m, v := newHarness(model.Item{ID: "1", Title: "Read"})
	v.Emit(view.ItemEditCancel, view.Payload{ID: "1", Title: "half typed"})
	assert.Zero(t, m.count("update"))
	assert.Equal(t, 1, m.count("read"))
	assert.Equal(t, []view.Render{view.EditItemDone{ID: "1", Title: "Read"}}, v.renders)
}

func TestRemoveOnlyItemHidesContent(t *testing.T) {
	c, m, v := newHarness()
	c.SetView("#/")
	c.AddItem("Buy milk")
	id := m.items[0].ID
	v.reset()

	c.RemoveItem(id)

	assert.Equal(t, view.RemoveItem{ID: id}, v.renders[0])
	vis, ok := last[view.ContentBlockVisibility](v)
	require.True(t, ok)
	assert.False(t, vis.Visible)
	cnt, ok := last[view.UpdateElementCount](v)
	require.True(t, ok)
	assert.Zero(t, cnt.Active)

	m.GetCount(func(n model.Counts, err error) {
		require.NoError(t, err)
		assert.Zero(t, n.Total)
	})
}

func TestErrorHandlerSeesFailures(t *testing.T) {
	type failure struct {
		op  string
		err error
	}
	var got []failure
	m := &memModel{items: []model.Item{{ID: "1", Title: "Read"}}, next: 1}
	v := &recView{}
	c := New(m, v, WithErrorHandler(func(op string, err error) {
		got = append(got, failure{op, err})
	}))

	c.RemoveItem("ghost")
	c.EditItem("ghost")
	c.EditItemSave("1", "fine")

	require.Len(t, got, 2)
	assert.ErrorIs(t, got[0].err, model.ErrNotFound)
	assert.ErrorIs(t, got[1].err, model.ErrNotFound)
	assert.NotEqual(t, got[0].op, got[1].op)
	assert.Equal(t, []view.Render{view.EditItemDone{ID: "1", Title: "fine"}}, v.renders)
}

func TestRemoveUnknownIDRendersNothing(t *testing.T) {
	c, _, v := newHarness()
	c.RemoveItem("ghost")
	assert.Empty(t, v.renders)
}

func TestRemoveCompletedOnlyTouchesCompleted(t *testing.T) {
	c, m, _ := newHarness(
		model.Item{ID: "1", Title: "a", Completed: true},
		model.Item{ID: "2", Title: "b"},
		model.Item{ID: "3", Title: "c", Completed: true},
	)
	c.SetView("#/")
	c.RemoveCompleted()

	assert.Equal(t, 2, m.count("remove"))
	require.Len(t, m.items, 1)
	assert.Equal(t, "2", m.items[0].ID)
}

func TestRemoveCompletedWithNothingCompleted(t *testing.T) {
	c, m, v := newHarness(model.Item{ID: "1", Title: "a"})
	c.SetView("#/active")
	v.reset()
	c.RemoveCompleted()
	assert.Zero(t, m.count("remove"))
	assert.Contains(t, v.commands(), "updateElementCount")
}

func TestSelectsUpdatesAndCounts(t *testing.T) {
	c, m, v := newHarness()
	c.AddItem("Buy milk")
	id := m.items[0].ID

	var before model.Counts
	m.GetCount(func(n model.Counts, _ error) { before = n })

	v.reset()
	c.Selects(id, true)
	assert.Equal(t, []view.Render{
		view.Selected{ID: id, Completed: true},
		view.UpdateElementCount{Active: 0},
		view.ContentBlockVisibility{Visible: true},
	}, v.renders)

	m.Read(model.ByID(id), func(items []model.Item, _ error) {
		require.Len(t, items, 1)
		assert.True(t, items[0].Completed)
	})
	m.GetCount(func(n model.Counts, _ error) {
		assert.Equal(t, before.Active-1, n.Active)
		assert.Equal(t, before.Total, n.Total)
	})
}

func TestSelectEventCarriesFlag(t *testing.T) {
	_, m, _ := newHarness(model.Item{ID: "1", Title: "a"})
	v := &recView{}
	New(m, v)
	v.Emit(view.Select, view.Payload{ID: "1", Completed: true})
	assert.True(t, m.items[0].Completed)
}
