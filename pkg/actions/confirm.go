package actions

import (
	"context"

	"github.com/mokka-studios/datatable/pkg/types"
)

// ConfirmDialog asks before deleting a row. Nothing is deleted until
// Confirm; Cancel closes the dialog without calling the adapter.
type ConfirmDialog[T any, K comparable] struct {
	state
	b   *Binding[T, K]
	row T
}

// NewConfirmDialog opens a delete confirmation for row.
func NewConfirmDialog[T any, K comparable](b *Binding[T, K], row T) *ConfirmDialog[T, K] {
	return &ConfirmDialog[T, K]{state: newState(ActionDelete), b: b, row: row}
}

// Row returns the row pending deletion.
func (d *ConfirmDialog[T, K]) Row() T { return d.row }

// Summary returns a read-only rendering of the row.
func (d *ConfirmDialog[T, K]) Summary() []Field { return Fields(d.b.View.Model(), d.row) }

// Confirm deletes the row through the adapter and removes it from the view
// on success.
func (d *ConfirmDialog[T, K]) Confirm(ctx context.Context) error {
	return run(ctx, d.b, &d.state, d.row, "delete",
		func(ctx context.Context) types.Result[T] { return d.b.Adapter.Delete(ctx, d.row) },
		func(T) { d.b.View.RemoveRow(d.b.View.Identity(d.row)) })
}

// Cancel closes the dialog.
func (d *ConfirmDialog[T, K]) Cancel() { d.Close() }
