package catalog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/mokka-studios/datatable/pkg/actions"
	"github.com/mokka-studios/datatable/pkg/grid"
	"github.com/mokka-studios/datatable/pkg/types"
)

// Options configures a Session.
type Options struct {
	PageSize int
	Locale   language.Tag
	Logger   logrus.FieldLogger
	Notifier actions.Notifier
}

// Session is a loaded grid over one entity type with the default row
// action dialogs.
type Session[T any] struct {
	Entity     Entity[T]
	View       *grid.View[T, string]
	Dispatcher *actions.Dispatcher[T, string]
	repo       types.Repository[T]
}

// Open builds the view and dispatcher for e and loads every row from repo.
func Open[T any](ctx context.Context, e Entity[T], repo types.Repository[T], opts Options) (*Session[T], error) {
	var gopts []grid.Option
	if opts.PageSize > 0 {
		gopts = append(gopts, grid.WithPageSize(opts.PageSize))
	}
	if opts.Locale != language.Und {
		gopts = append(gopts, grid.WithLocale(opts.Locale))
	}
	if opts.Logger != nil {
		gopts = append(gopts, grid.WithLogger(opts.Logger.WithField("entity", e.Name)))
	}
	view, err := grid.NewView(e.Columns, e.ID, nil, gopts...)
	if err != nil {
		return nil, err
	}

	reg := actions.NewRegistry[T, string]()
	if err := actions.RegisterDefaults(reg, e.Name); err != nil {
		return nil, err
	}
	d, err := actions.New(actions.Config[T, string]{
		EntityType: e.Name,
		View:       view,
		Adapter:    repo,
		Registry:   reg,
		Notifier:   opts.Notifier,
		Logger:     opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	if err := d.Refresh(ctx); err != nil {
		return nil, err
	}
	return &Session[T]{Entity: e, View: view, Dispatcher: d, repo: repo}, nil
}

// Row returns the row with the given id from the view, falling back to the
// repository for rows loaded after Open.
func (s *Session[T]) Row(ctx context.Context, id string) (T, error) {
	if row, ok := s.View.Row(id); ok {
		return row, nil
	}
	return s.repo.Get(ctx, id)
}

// Fields renders row through every column.
func (s *Session[T]) Fields(row T) []actions.Field { return actions.Fields(s.Entity.Columns, row) }

func dialogAs[D any](d actions.Dialog, entity string, action actions.Action) (D, error) {
	typed, ok := d.(D)
	if !ok {
		var zero D
		return zero, fmt.Errorf("%w: %s/%s", types.ErrMissingDialog, entity, action)
	}
	return typed, nil
}

// Preview renders the row with the given id field by field.
func (s *Session[T]) Preview(ctx context.Context, id string) ([]actions.Field, error) {
	row, err := s.Row(ctx, id)
	if err != nil {
		return nil, err
	}
	dlg, err := dialogAs[*actions.PreviewDialog[T, string]](s.Dispatcher.Dispatch(row, actions.ActionPreview), s.Entity.Name, actions.ActionPreview)
	if err != nil {
		return nil, err
	}
	defer dlg.Close()
	return dlg.Fields(), nil
}

// Edit applies key=value assignments to the row with the given id and
// submits it through the edit dialog.
func (s *Session[T]) Edit(ctx context.Context, id string, assignments []string) (T, error) {
	var zero T
	row, err := s.Row(ctx, id)
	if err != nil {
		return zero, err
	}
	dlg, err := dialogAs[*actions.EditDialog[T, string]](s.Dispatcher.Dispatch(row, actions.ActionEdit), s.Entity.Name, actions.ActionEdit)
	if err != nil {
		return zero, err
	}
	defer dlg.Close()

	edited := dlg.Row()
	if err := s.Entity.Assign(&edited, assignments); err != nil {
		return zero, err
	}
	if err := dlg.Submit(ctx, edited); err != nil {
		return zero, err
	}
	saved, _ := s.View.Row(id)
	return saved, nil
}

// Delete removes the row with the given id through the confirm dialog.
func (s *Session[T]) Delete(ctx context.Context, id string) error {
	row, err := s.Row(ctx, id)
	if err != nil {
		return err
	}
	dlg, err := dialogAs[*actions.ConfirmDialog[T, string]](s.Dispatcher.Dispatch(row, actions.ActionDelete), s.Entity.Name, actions.ActionDelete)
	if err != nil {
		return err
	}
	defer dlg.Close()
	return dlg.Confirm(ctx)
}

// Create builds a new entity from key=value assignments and submits it
// through the create dialog. The stored entity is returned.
func (s *Session[T]) Create(ctx context.Context, assignments []string) (T, error) {
	var zero T
	dlg, err := dialogAs[*actions.CreateDialog[T, string]](s.Dispatcher.Create(), s.Entity.Name, actions.ActionCreate)
	if err != nil {
		return zero, err
	}
	defer dlg.Close()

	entity := dlg.Template()
	if err := s.Entity.Assign(&entity, assignments); err != nil {
		return zero, err
	}
	before := s.View.Rows()
	if err := dlg.Submit(ctx, entity); err != nil {
		return zero, err
	}
	rows := s.View.Rows()
	if len(rows) > len(before) {
		return rows[len(rows)-1], nil
	}
	return entity, nil
}
