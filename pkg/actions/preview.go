package actions

// PreviewDialog is a read-only detail view of a row.
type PreviewDialog[T any, K comparable] struct {
	state
	b   *Binding[T, K]
	row T
}

// NewPreviewDialog opens a preview of row.
func NewPreviewDialog[T any, K comparable](b *Binding[T, K], row T) *PreviewDialog[T, K] {
	return &PreviewDialog[T, K]{state: newState(ActionPreview), b: b, row: row}
}

// Row returns the previewed row.
func (d *PreviewDialog[T, K]) Row() T { return d.row }

// Fields returns every column of the row.
func (d *PreviewDialog[T, K]) Fields() []Field { return Fields(d.b.View.Model(), d.row) }
