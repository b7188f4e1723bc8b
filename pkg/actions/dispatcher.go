package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mokka-studios/datatable/pkg/grid"
	"github.com/mokka-studios/datatable/pkg/types"
)

// Callback handles a row action in place of a dialog.
type Callback[T any] func(row T)

// Config describes a dispatcher for one entity type.
type Config[T any, K comparable] struct {
	EntityType string
	View       *grid.View[T, K]
	Adapter    types.Adapter[T]
	Registry   *Registry[T, K]
	// Callbacks take precedence over registered dialogs.
	Callbacks map[Action]Callback[T]
	Notifier  Notifier
	Logger    logrus.FieldLogger
}

// Dispatcher maps a row and an action name to a callback or a dialog.
type Dispatcher[T any, K comparable] struct {
	binding   *Binding[T, K]
	registry  *Registry[T, K]
	callbacks map[Action]Callback[T]
}

// New validates cfg and returns a dispatcher. Every standard action must
// resolve to a callback or a registered dialog; a gap is reported as a
// *types.ConfigurationError instead of being discovered on click.
func New[T any, K comparable](cfg Config[T, K]) (*Dispatcher[T, K], error) {
	if cfg.EntityType == "" {
		return nil, dialogError(types.ErrUnknownEntityType, "entity type is required")
	}
	if cfg.View == nil {
		return nil, dialogError(types.ErrInvalidData, "nil view")
	}
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry[T, K]()
	}

	var missing []Action
	needsAdapter := false
	for _, a := range StandardActions {
		if cfg.Callbacks[a] != nil {
			continue
		}
		if _, ok := cfg.Registry.Lookup(cfg.EntityType, a); !ok {
			missing = append(missing, a)
			continue
		}
		needsAdapter = needsAdapter || a != ActionPreview
	}
	if len(missing) > 0 {
		return nil, dialogError(types.ErrMissingDialog, fmt.Sprintf("%s: %v", cfg.EntityType, missing))
	}
	if needsAdapter && cfg.Adapter == nil {
		return nil, dialogError(types.ErrInvalidData, "dialogs need an adapter")
	}

	callbacks := make(map[Action]Callback[T], len(cfg.Callbacks))
	for a, cb := range cfg.Callbacks {
		if cb != nil {
			callbacks[a] = cb
		}
	}
	b := &Binding[T, K]{
		EntityType: cfg.EntityType,
		Adapter:    cfg.Adapter,
		View:       cfg.View,
		Notifier:   cfg.Notifier,
		Log:        cfg.Logger,
	}
	return &Dispatcher[T, K]{binding: b, registry: cfg.Registry, callbacks: callbacks}, nil
}

// EntityType returns the entity type the dispatcher serves.
func (d *Dispatcher[T, K]) EntityType() string { return d.binding.EntityType }

// View returns the view the dispatcher applies results to.
func (d *Dispatcher[T, K]) View() *grid.View[T, K] { return d.binding.View }

// Dispatch runs action on row. A callback is invoked and a nil dialog
// returned; otherwise the registered dialog is opened. An action with
// neither is logged and ignored.
func (d *Dispatcher[T, K]) Dispatch(row T, action Action) Dialog {
	if cb, ok := d.callbacks[action]; ok {
		cb(row)
		return nil
	}
	f, ok := d.registry.Lookup(d.binding.EntityType, action)
	if !ok {
		d.binding.rowLogger(action, row).Warn("no callback or dialog for row action")
		return nil
	}
	return f(d.binding, row)
}

// Create opens the create dialog. It returns nil when no create dialog or
// callback is configured.
func (d *Dispatcher[T, K]) Create() Dialog {
	var zero T
	return d.Dispatch(zero, ActionCreate)
}

// Refresh reloads the view's rows from the adapter. A failed load leaves
// the rows as they were and raises one notification.
func (d *Dispatcher[T, K]) Refresh(ctx context.Context) error {
	b := d.binding
	if b.Adapter == nil {
		return dialogError(types.ErrInvalidData, "refresh needs an adapter")
	}
	res := b.Adapter.List(ctx)
	if err := res.Err(); err != nil {
		b.logger().WithField("entity", b.EntityType).WithError(err).Warn("list failed")
		b.notify(LevelError, "list", types.MessageOf(err))
		return err
	}
	b.View.SetRows(res.Data)
	return nil
}

// DeleteSelected deletes every selected row, one adapter call per row.
// Deleted rows leave the view; each failure is reported once and the
// failures are returned joined.
func (d *Dispatcher[T, K]) DeleteSelected(ctx context.Context) (int, error) {
	b := d.binding
	if b.Adapter == nil {
		return 0, dialogError(types.ErrInvalidData, "delete needs an adapter")
	}
	var (
		deleted int
		errs    []error
	)
	for _, row := range b.View.SelectedRows() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res := call(ctx, func(ctx context.Context) types.Result[T] { return b.Adapter.Delete(ctx, row) })
		if err := res.Err("delete"); err != nil {
			b.rowLogger(ActionDelete, row).WithError(err).Warn("bulk delete failed")
			b.notify(LevelError, ActionDelete, types.MessageOf(err))
			errs = append(errs, err)
			continue
		}
		b.View.RemoveRow(b.View.Identity(row))
		deleted++
	}
	if deleted > 0 {
		b.notify(LevelSuccess, ActionDelete, fmt.Sprintf("Deleted %d %s.", deleted, b.EntityType))
	}
	return deleted, errors.Join(errs...)
}
