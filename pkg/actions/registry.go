package actions

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mokka-studios/datatable/pkg/types"
)

// Action names a row action.
type Action string

// Row actions.
const (
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionPreview Action = "preview"
	ActionCreate  Action = "create"
)

// StandardActions are the per-row actions every dispatcher must resolve.
var StandardActions = []Action{ActionEdit, ActionDelete, ActionPreview}

// DialogFactory opens a dialog for row.
type DialogFactory[T any, K comparable] func(b *Binding[T, K], row T) Dialog

type registryKey struct {
	entityType string
	action     Action
}

// Registry maps (entity type, action) to the dialog that serves it.
type Registry[T any, K comparable] struct {
	mu        sync.RWMutex
	factories map[registryKey]DialogFactory[T, K]
}

// NewRegistry returns an empty registry.
func NewRegistry[T any, K comparable]() *Registry[T, K] {
	return &Registry[T, K]{factories: make(map[registryKey]DialogFactory[T, K])}
}

func dialogError(err error, reason string) error {
	return &types.ConfigurationError{Component: "dialogs", Reason: reason, Err: err}
}

// Register binds f to (entityType, action). Registering the same pair twice
// is a configuration error.
func (r *Registry[T, K]) Register(entityType string, action Action, f DialogFactory[T, K]) error {
	if entityType == "" || action == "" {
		return dialogError(types.ErrInvalidData, "entity type and action are required")
	}
	if f == nil {
		return dialogError(types.ErrInvalidData, fmt.Sprintf("nil factory for %s/%s", entityType, action))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := registryKey{entityType, action}
	if _, ok := r.factories[k]; ok {
		return dialogError(types.ErrDuplicateDialog, fmt.Sprintf("%s/%s", entityType, action))
	}
	r.factories[k] = f
	return nil
}

// Lookup returns the factory bound to (entityType, action).
func (r *Registry[T, K]) Lookup(entityType string, action Action) (DialogFactory[T, K], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[registryKey{entityType, action}]
	return f, ok
}

// Require returns a configuration error naming the first action that has no
// dialog for entityType.
func (r *Registry[T, K]) Require(entityType string, actions ...Action) error {
	for _, a := range actions {
		if _, ok := r.Lookup(entityType, a); !ok {
			return dialogError(types.ErrMissingDialog, fmt.Sprintf("%s/%s", entityType, a))
		}
	}
	return nil
}

// Actions returns the actions registered for entityType, sorted by name.
func (r *Registry[T, K]) Actions(entityType string) []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Action
	for k := range r.factories {
		if k.entityType == entityType {
			out = append(out, k.action)
		}
	}
	slices.Sort(out)
	return out
}

// RegisterDefaults binds the built-in edit, delete, preview and create
// dialogs to entityType.
func RegisterDefaults[T any, K comparable](r *Registry[T, K], entityType string) error {
	defaults := []struct {
		action  Action
		factory DialogFactory[T, K]
	}{
		{ActionEdit, func(b *Binding[T, K], row T) Dialog { return NewEditDialog(b, row) }},
		{ActionDelete, func(b *Binding[T, K], row T) Dialog { return NewConfirmDialog(b, row) }},
		{ActionPreview, func(b *Binding[T, K], row T) Dialog { return NewPreviewDialog(b, row) }},
		{ActionCreate, func(b *Binding[T, K], row T) Dialog { return NewCreateDialog(b, row) }},
	}
	for _, d := range defaults {
		if err := r.Register(entityType, d.action, d.factory); err != nil {
			return err
		}
	}
	return nil
}
