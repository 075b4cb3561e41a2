package model_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
)

func newModel(t *testing.T) *model.Model {
	t.Helper()
	s, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	return model.New(context.Background(), s, nil)
}

func TestCallbacksRunBeforeReturn(t *testing.T) {
	m := newModel(t)

	var created model.Item
	called := false
	m.Create(" Buy milk ", func(it model.Item, err error) {
		require.NoError(t, err)
		created = it
		called = true
	})
	require.True(t, called)
	assert.Equal(t, "Buy milk", created.Title)

	m.Update(created.ID, model.SetCompleted(true), func(err error) { require.NoError(t, err) })
	m.GetCount(func(c model.Counts, err error) {
		require.NoError(t, err)
		assert.Equal(t, model.Counts{Completed: 1, Total: 1}, c)
	})
	m.Remove(created.ID, func(err error) { require.NoError(t, err) })
	m.Read(model.All(), func(items []model.Item, err error) {
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestCreateBlankIsValidationError(t *testing.T) {
	m := newModel(t)
	m.Create("  ", func(_ model.Item, err error) {
		assert.ErrorIs(t, err, model.ErrValidation)
	})
}

func TestQueryMatch(t *testing.T) {
	it := model.Item{ID: "a", Completed: true}
	assert.True(t, model.All().Match(it))
	assert.True(t, model.ByID("a").Match(it))
	assert.False(t, model.ByID("b").Match(it))
	assert.True(t, model.ByCompleted(true).Match(it))
	assert.False(t, model.ByCompleted(false).Match(it))
}

func TestPatchApply(t *testing.T) {
	it := model.Item{Title: "old"}
	model.SetTitle("new").Apply(&it)
	assert.Equal(t, "new", it.Title)
	assert.False(t, it.Completed)
	model.SetCompleted(true).Apply(&it)
	assert.True(t, it.Completed)
	assert.Equal(t, "new", it.Title)
}
