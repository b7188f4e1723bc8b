package sqlite

import (
	"testing"
	"time"

	"github.com/mokka-studios/datatable/pkg/types"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// clock returns a clock that advances one second per call.
func clock() func() time.Time {
	t := epoch
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// attach returns an attached backend over dir, detached at cleanup.
func attach(t *testing.T, dir string, seed bool) *Backend {
	t.Helper()
	b := NewBackend(WithClock(clock()))
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir, SeedDemoData: seed}
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b
}

func mustCreate[T any](t *testing.T, res types.Result[T]) T {
	t.Helper()
	if !res.Success {
		t.Fatalf("create failed: %s", res.Message)
	}
	return *res.Entity
}
