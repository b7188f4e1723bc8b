package actions

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mokka-studios/datatable/pkg/grid"
	"github.com/mokka-studios/datatable/pkg/types"
)

type item struct {
	ID    int
	Name  string
	Price float64
}

func itemID(i item) int { return i.ID }

func itemModel() *grid.ColumnModel[item] {
	return grid.MustColumnModel(
		grid.Column[item]{ID: "name", Header: "Name", Type: grid.TypeText, Accessor: func(i item) any { return i.Name }},
		grid.Column[item]{ID: "price", Header: "Price", Type: grid.TypeNumber, Accessor: func(i item) any { return i.Price }},
	)
}

func items() []item {
	return []item{{1, "lamp", 20}, {2, "desk", 150}, {3, "chair", 80}}
}

func newItemView(t *testing.T) *grid.View[item, int] {
	t.Helper()
	v, err := grid.NewView(itemModel(), itemID, items())
	require.NoError(t, err)
	return v
}

// fakeAdapter records calls. When gate is set, mutating calls block until
// a value is sent on it.
type fakeAdapter struct {
	mu      sync.Mutex
	calls   map[string]int
	result  func(op string, it item) types.Result[item]
	list    types.ListResult[item]
	gate    chan struct{}
	started chan struct{}
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{calls: make(map[string]int)}
}

func (f *fakeAdapter) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAdapter) do(op string, it item) types.Result[item] {
	f.mu.Lock()
	f.calls[op]++
	result := f.result
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	if result != nil {
		return result(op, it)
	}
	return types.Succeeded(it, "")
}

func (f *fakeAdapter) List(context.Context) types.ListResult[item] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["list"]++
	return f.list
}

func (f *fakeAdapter) Create(_ context.Context, it item) types.Result[item] {
	return f.do("create", it)
}

func (f *fakeAdapter) Update(_ context.Context, it item) types.Result[item] {
	return f.do("update", it)
}

func (f *fakeAdapter) Delete(_ context.Context, it item) types.Result[item] {
	return f.do("delete", it)
}

type recorder struct {
	mu  sync.Mutex
	got []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recorder) errors() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.got {
		if n.Level == LevelError {
			out = append(out, n)
		}
	}
	return out
}

type fixture struct {
	view     *grid.View[item, int]
	adapter  *fakeAdapter
	notes    *recorder
	dispatch *Dispatcher[item, int]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := NewRegistry[item, int]()
	require.NoError(t, RegisterDefaults(reg, "items"))
	f := &fixture{view: newItemView(t), adapter: newFakeAdapter(), notes: &recorder{}}
	d, err := New(Config[item, int]{
		EntityType: "items",
		View:       f.view,
		Adapter:    f.adapter,
		Registry:   reg,
		Notifier:   f.notes,
	})
	require.NoError(t, err)
	f.dispatch = d
	return f
}

func viewIDs(v *grid.View[item, int]) []int {
	var out []int
	for _, r := range v.Rows() {
		out = append(out, r.ID)
	}
	return out
}
