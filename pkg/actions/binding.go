package actions

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mokka-studios/datatable/pkg/grid"
	"github.com/mokka-studios/datatable/pkg/types"
)

// Binding is what a dialog acts on: the adapter that persists its entity
// type and the view that displays it.
type Binding[T any, K comparable] struct {
	EntityType string
	Adapter    types.Adapter[T]
	View       *grid.View[T, K]
	Notifier   Notifier
	Log        logrus.FieldLogger
}

func (b *Binding[T, K]) logger() logrus.FieldLogger {
	if b.Log != nil {
		return b.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (b *Binding[T, K]) rowLogger(action Action, row T) logrus.FieldLogger {
	return b.logger().WithFields(logrus.Fields{
		"entity": b.EntityType,
		"action": string(action),
		"row_id": fmt.Sprint(b.View.Identity(row)),
	})
}

func (b *Binding[T, K]) notify(level Level, action Action, msg string) {
	if b.Notifier == nil {
		return
	}
	b.Notifier.Notify(Notification{Level: level, EntityType: b.EntityType, Action: action, Message: msg})
}

// succeeded returns the entity a successful result carries, or fallback.
func succeeded[T any](res types.Result[T], fallback T) T {
	if res.Entity != nil {
		return *res.Entity
	}
	return fallback
}

// Field is one labelled, rendered value of a row.
type Field struct {
	Label string
	Value string
}

// Fields renders row through every column of m in declaration order.
func Fields[T any](m *grid.ColumnModel[T], row T) []Field {
	cols := m.Columns()
	out := make([]Field, len(cols))
	for i, c := range cols {
		out[i] = Field{Label: c.Header, Value: c.Cell(row)}
	}
	return out
}
