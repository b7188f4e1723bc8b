package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mokka-studios/datatable/pkg/types"
)

func TestNewColumnModel(t *testing.T) {
	name := func(p person) any { return p.Name }

	tests := []struct {
		name    string
		cols    []Column[person]
		wantErr error
	}{
		{
			name: "valid columns",
			cols: personColumns(),
		},
		{
			name:    "duplicate id is rejected",
			cols:    []Column[person]{{ID: "name", Accessor: name}, {ID: "name", Accessor: name}},
			wantErr: types.ErrDuplicateColumn,
		},
		{
			name:    "empty id is rejected",
			cols:    []Column[person]{{ID: "", Accessor: name}},
			wantErr: types.ErrInvalidColumn,
		},
		{
			name:    "missing accessor is rejected",
			cols:    []Column[person]{{ID: "name"}},
			wantErr: types.ErrInvalidColumn,
		},
		{
			name:    "unknown value type is rejected",
			cols:    []Column[person]{{ID: "name", Accessor: name, Type: "date"}},
			wantErr: types.ErrInvalidColumn,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewColumnModel(tt.cols...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, types.IsConfigurationError(err))
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.cols), m.Len())
		})
	}
}

func TestColumnModelResolve(t *testing.T) {
	m := personModel(t)

	col, ok := m.Resolve("email")
	require.True(t, ok)
	assert.Equal(t, "Email", col.Header)

	_, ok = m.Resolve("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"name", "email", "age", "status", "score", "id"}, m.AllIDs())
}

func TestColumnDefaults(t *testing.T) {
	m := MustColumnModel(Column[person]{ID: "raw", Accessor: func(p person) any { return p.ID }})
	col, _ := m.Resolve("raw")
	assert.Equal(t, "raw", col.Header, "header defaults to id")
	assert.True(t, col.Sortable())
	assert.True(t, col.Hideable())
	assert.False(t, col.Filterable(), "untyped columns are not filterable")

	assert.Panics(t, func() {
		MustColumnModel(Column[person]{ID: "x"})
	})
}

func TestColumnCell(t *testing.T) {
	m := personModel(t)
	p := person{ID: 7, Name: "Ada", Score: 4.24}

	score, _ := m.Resolve("score")
	assert.Equal(t, "4.2", score.Cell(p))

	age, _ := m.Resolve("age")
	assert.Equal(t, "", age.Cell(p), "nil pointer renders empty")
	p.Age = intPtr(36)
	assert.Equal(t, "36", age.Cell(p))

	id, _ := m.Resolve("id")
	assert.Equal(t, "7", id.Cell(p))
}
