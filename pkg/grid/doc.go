// Package grid is an entity-agnostic tabular data engine. A View composes a
// column model with filter, sort, pagination, selection and column layout
// state, and derives the visible page in a fixed order: filter, stable sort,
// clamp-and-slice.
//
// The package performs no I/O. Rendering and persistence are supplied by
// callers through cell renderers and the types.Adapter contract.
package grid
