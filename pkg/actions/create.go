package actions

import (
	"context"

	"github.com/mokka-studios/datatable/pkg/types"
)

// CreateDialog is an empty entity form. Submitting calls the adapter's
// Create and appends the stored entity to the view.
type CreateDialog[T any, K comparable] struct {
	state
	b        *Binding[T, K]
	template T
}

// NewCreateDialog opens a create form prefilled with template, usually the
// zero value.
func NewCreateDialog[T any, K comparable](b *Binding[T, K], template T) *CreateDialog[T, K] {
	return &CreateDialog[T, K]{state: newState(ActionCreate), b: b, template: template}
}

// Template returns the initial form values.
func (d *CreateDialog[T, K]) Template() T { return d.template }

// Submit creates entity.
func (d *CreateDialog[T, K]) Submit(ctx context.Context, entity T) error {
	return run(ctx, d.b, &d.state, entity, "create",
		func(ctx context.Context) types.Result[T] { return d.b.Adapter.Create(ctx, entity) },
		func(created T) { d.b.View.AppendRow(created) })
}
