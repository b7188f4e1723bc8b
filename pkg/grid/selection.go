package grid

// HeaderState is the tri-state of a "select all" checkbox.
type HeaderState int

// Header checkbox states.
const (
	Unchecked HeaderState = iota
	Indeterminate
	Checked
)

func (h HeaderState) String() string {
	switch h {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

// Selection tracks selected rows by identity.
type Selection[K comparable] struct {
	ids     map[K]struct{}
	version uint64
}

// NewSelection returns an empty selection.
func NewSelection[K comparable]() *Selection[K] {
	return &Selection[K]{ids: make(map[K]struct{})}
}

// Version changes whenever the selection changes.
func (s *Selection[K]) Version() uint64 { return s.version }

// Toggle flips the selection of id and returns its new state.
func (s *Selection[K]) Toggle(id K) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		s.version++
		return false
	}
	s.ids[id] = struct{}{}
	s.version++
	return true
}

// Set selects or deselects id.
func (s *Selection[K]) Set(id K, selected bool) {
	_, ok := s.ids[id]
	switch {
	case selected && !ok:
		s.ids[id] = struct{}{}
	case !selected && ok:
		delete(s.ids, id)
	default:
		return
	}
	s.version++
}

// ToggleAll selects or deselects every id in visible. Rows outside the
// visible page are left alone.
func (s *Selection[K]) ToggleAll(visible []K, selected bool) {
	for _, id := range visible {
		s.Set(id, selected)
	}
}

// IsSelected reports whether id is selected.
func (s *Selection[K]) IsSelected(id K) bool {
	_, ok := s.ids[id]
	return ok
}

// SelectedCount returns the number of selected rows.
func (s *Selection[K]) SelectedCount() int { return len(s.ids) }

// HeaderState derives the header checkbox from the visible page.
func (s *Selection[K]) HeaderState(visible []K) HeaderState {
	n := 0
	for _, id := range visible {
		if s.IsSelected(id) {
			n++
		}
	}
	switch {
	case n == 0:
		return Unchecked
	case n == len(visible):
		return Checked
	default:
		return Indeterminate
	}
}

// ToggleHeader applies a click on the header checkbox: a checked header
// clears the visible page, any other state selects all of it.
func (s *Selection[K]) ToggleHeader(visible []K) {
	s.ToggleAll(visible, s.HeaderState(visible) != Checked)
}

// Prune drops every id for which present returns false and reports how many
// were removed.
func (s *Selection[K]) Prune(present func(K) bool) int {
	removed := 0
	for id := range s.ids {
		if !present(id) {
			delete(s.ids, id)
			removed++
		}
	}
	if removed > 0 {
		s.version++
	}
	return removed
}

// Clear deselects everything.
func (s *Selection[K]) Clear() {
	if len(s.ids) == 0 {
		return
	}
	clear(s.ids)
	s.version++
}
