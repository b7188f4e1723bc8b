package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mokka-studios/datatable/pkg/types"
)

func TestConfirmDelete(t *testing.T) {
	t.Run("confirm", func(t *testing.T) {
		f := newFixture(t)
		f.view.ToggleRow(2)
		dlg := f.dispatch.Dispatch(items()[1], ActionDelete).(*ConfirmDialog[item, int])
		assert.Equal(t, []Field{{"Name", "desk"}, {"Price", "150"}}, dlg.Summary())
		assert.Zero(t, f.adapter.count("delete"), "nothing is deleted before confirm")

		require.NoError(t, dlg.Confirm(context.Background()))
		assert.Equal(t, 1, f.adapter.count("delete"))
		assert.Equal(t, []int{1, 3}, viewIDs(f.view))
		assert.False(t, f.view.IsSelected(2))
		assert.False(t, dlg.IsOpen())
	})

	t.Run("cancel", func(t *testing.T) {
		f := newFixture(t)
		dlg := f.dispatch.Dispatch(items()[1], ActionDelete).(*ConfirmDialog[item, int])
		dlg.Cancel()

		assert.Zero(t, f.adapter.count("delete"))
		assert.Equal(t, []int{1, 2, 3}, viewIDs(f.view))
		assert.ErrorIs(t, dlg.Confirm(context.Background()), types.ErrDialogClosed)
	})
}

func TestEditFailureKeepsDialogOpen(t *testing.T) {
	f := newFixture(t)
	f.adapter.result = func(string, item) types.Result[item] { return types.Failed[item]("conflict") }

	dlg := f.dispatch.Dispatch(items()[0], ActionEdit).(*EditDialog[item, int])
	edited := dlg.Row()
	edited.Name = "brass lamp"

	err := dlg.Submit(context.Background(), edited)
	var ae *types.AdapterError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "conflict", ae.Message)

	assert.True(t, dlg.IsOpen())
	assert.False(t, dlg.Busy())
	assert.Equal(t, "conflict", dlg.Message())
	row, _ := f.view.Row(1)
	assert.Equal(t, "lamp", row.Name, "source data unchanged")
	require.Len(t, f.notes.errors(), 1)
	assert.Equal(t, "conflict", f.notes.errors()[0].Message)
}

func TestEditSuccessReplacesRow(t *testing.T) {
	f := newFixture(t)
	f.view.ToggleRow(1)
	f.adapter.result = func(_ string, it item) types.Result[item] {
		it.Price = 25
		return types.Succeeded(it, "Item updated.")
	}

	dlg := f.dispatch.Dispatch(items()[0], ActionEdit).(*EditDialog[item, int])
	edited := dlg.Row()
	edited.Name = "brass lamp"
	require.NoError(t, dlg.Submit(context.Background(), edited))

	row, _ := f.view.Row(1)
	assert.Equal(t, item{1, "brass lamp", 25}, row, "the adapter's entity wins")
	assert.True(t, f.view.IsSelected(1))
	assert.False(t, dlg.IsOpen())
	assert.Empty(t, f.notes.errors())
	require.Len(t, f.notes.got, 1)
	assert.Equal(t, LevelSuccess, f.notes.got[0].Level)
}

func TestEditRejectsIdentityChange(t *testing.T) {
	f := newFixture(t)
	dlg := f.dispatch.Dispatch(items()[0], ActionEdit).(*EditDialog[item, int])
	err := dlg.Submit(context.Background(), item{ID: 7, Name: "x"})
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.Zero(t, f.adapter.count("update"))
}

func TestEmptyFailureMessageFallsBack(t *testing.T) {
	f := newFixture(t)
	f.adapter.result = func(string, item) types.Result[item] { return types.Failed[item]("") }

	dlg := f.dispatch.Dispatch(items()[0], ActionDelete).(*ConfirmDialog[item, int])
	require.Error(t, dlg.Confirm(context.Background()))
	assert.Equal(t, types.DefaultAdapterMessage, dlg.Message())
}

func TestPanickingAdapterIsRecovered(t *testing.T) {
	f := newFixture(t)
	f.adapter.result = func(string, item) types.Result[item] { panic("boom") }

	dlg := f.dispatch.Dispatch(items()[0], ActionEdit).(*EditDialog[item, int])
	err := dlg.Submit(context.Background(), items()[0])
	require.Error(t, err)
	assert.Equal(t, types.DefaultAdapterMessage, dlg.Message())
	assert.True(t, dlg.IsOpen())
}

func TestBusyDialogRejectsSecondSubmit(t *testing.T) {
	f := newFixture(t)
	f.adapter.gate = make(chan struct{})
	f.adapter.started = make(chan struct{}, 1)

	dlg := f.dispatch.Dispatch(items()[0], ActionEdit).(*EditDialog[item, int])
	done := make(chan error, 1)
	go func() { done <- dlg.Submit(context.Background(), items()[0]) }()
	<-f.adapter.started

	assert.True(t, dlg.Busy())
	assert.ErrorIs(t, dlg.Submit(context.Background(), items()[0]), types.ErrDialogBusy)

	other := f.dispatch.Dispatch(items()[2], ActionDelete).(*ConfirmDialog[item, int])
	assert.False(t, other.Busy(), "each dialog owns its request")
	f.view.ToggleRow(3)
	assert.True(t, f.view.IsSelected(3), "the table stays interactive")

	close(f.adapter.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, f.adapter.count("update"))
}

func TestClosedDialogLateResults(t *testing.T) {
	t.Run("late success is applied", func(t *testing.T) {
		f := newFixture(t)
		f.adapter.gate = make(chan struct{})
		f.adapter.started = make(chan struct{}, 1)

		dlg := f.dispatch.Dispatch(items()[1], ActionDelete).(*ConfirmDialog[item, int])
		done := make(chan error, 1)
		go func() { done <- dlg.Confirm(context.Background()) }()
		<-f.adapter.started
		dlg.Close()
		close(f.adapter.gate)

		require.NoError(t, <-done)
		assert.Equal(t, []int{1, 3}, viewIDs(f.view))
	})

	t.Run("late failure is not surfaced", func(t *testing.T) {
		f := newFixture(t)
		f.adapter.gate = make(chan struct{})
		f.adapter.started = make(chan struct{}, 1)
		f.adapter.result = func(string, item) types.Result[item] { return types.Failed[item]("timeout") }

		dlg := f.dispatch.Dispatch(items()[0], ActionEdit).(*EditDialog[item, int])
		done := make(chan error, 1)
		go func() { done <- dlg.Submit(context.Background(), items()[0]) }()
		<-f.adapter.started
		dlg.Close()
		close(f.adapter.gate)

		assert.Error(t, <-done)
		assert.Empty(t, dlg.Message())
		assert.Empty(t, f.notes.errors())
	})
}

func TestCreateAppendsRow(t *testing.T) {
	f := newFixture(t)
	f.adapter.result = func(_ string, it item) types.Result[item] {
		it.ID = 4
		return types.Succeeded(it, "")
	}

	dlg := f.dispatch.Create().(*CreateDialog[item, int])
	assert.Equal(t, item{}, dlg.Template())
	require.NoError(t, dlg.Submit(context.Background(), item{Name: "stool", Price: 30}))

	assert.Equal(t, []int{1, 2, 3, 4}, viewIDs(f.view))
	assert.Equal(t, 4, f.view.Snapshot().TotalRows)
	assert.ErrorIs(t, dlg.Submit(context.Background(), item{}), types.ErrDialogClosed)
}
