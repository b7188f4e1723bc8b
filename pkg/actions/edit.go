package actions

import (
	"context"
	"fmt"

	"github.com/mokka-studios/datatable/pkg/types"
)

// EditDialog is an entity form prefilled with a row. Submitting calls the
// adapter's Update and, on success, replaces the row in the view.
type EditDialog[T any, K comparable] struct {
	state
	b   *Binding[T, K]
	row T
	key K
}

// NewEditDialog opens an edit dialog for row.
func NewEditDialog[T any, K comparable](b *Binding[T, K], row T) *EditDialog[T, K] {
	return &EditDialog[T, K]{state: newState(ActionEdit), b: b, row: row, key: b.View.Identity(row)}
}

// Row returns the row the form was prefilled with.
func (d *EditDialog[T, K]) Row() T { return d.row }

// Fields returns the prefilled values, one per column.
func (d *EditDialog[T, K]) Fields() []Field { return Fields(d.b.View.Model(), d.row) }

// Submit saves edited. edited must keep the identity of the original row.
// It returns types.ErrDialogBusy while a previous submit is in flight and
// an *types.AdapterError when the adapter rejects the update.
func (d *EditDialog[T, K]) Submit(ctx context.Context, edited T) error {
	if id := d.b.View.Identity(edited); id != d.key {
		return fmt.Errorf("%w: edit changed identity %v to %v", types.ErrInvalidID, d.key, id)
	}
	return run(ctx, d.b, &d.state, edited, "update",
		func(ctx context.Context) types.Result[T] { return d.b.Adapter.Update(ctx, edited) },
		func(saved T) {
			if !d.b.View.ReplaceRow(saved) {
				d.b.rowLogger(ActionEdit, saved).Debug("updated row is no longer in the view")
			}
		})
}
