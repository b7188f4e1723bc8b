package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mokka-studios/datatable/pkg/types"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry[item, int]()
	preview := func(b *Binding[item, int], row item) Dialog { return NewPreviewDialog(b, row) }

	require.NoError(t, reg.Register("items", ActionPreview, preview))

	err := reg.Register("items", ActionPreview, preview)
	assert.ErrorIs(t, err, types.ErrDuplicateDialog)
	assert.True(t, types.IsConfigurationError(err))

	assert.ErrorIs(t, reg.Register("", ActionEdit, preview), types.ErrInvalidData)
	assert.ErrorIs(t, reg.Register("items", ActionEdit, nil), types.ErrInvalidData)

	_, ok := reg.Lookup("items", ActionPreview)
	assert.True(t, ok)
	_, ok = reg.Lookup("orders", ActionPreview)
	assert.False(t, ok)

	assert.NoError(t, reg.Require("items", ActionPreview))
	err = reg.Require("items", ActionPreview, ActionDelete)
	assert.ErrorIs(t, err, types.ErrMissingDialog)
	assert.Contains(t, err.Error(), "items/delete")
}

func TestRegisterDefaults(t *testing.T) {
	reg := NewRegistry[item, int]()
	require.NoError(t, RegisterDefaults(reg, "items"))
	assert.Equal(t, []Action{ActionCreate, ActionDelete, ActionEdit, ActionPreview}, reg.Actions("items"))
	assert.Empty(t, reg.Actions("orders"))

	assert.ErrorIs(t, RegisterDefaults(reg, "items"), types.ErrDuplicateDialog)
}
