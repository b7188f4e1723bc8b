package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mokka-studios/datatable/internal/catalog"
	"github.com/mokka-studios/datatable/pkg/grid"
	"github.com/mokka-studios/datatable/pkg/types"
)

type listFlags struct {
	filters  []string
	search   string
	sort     string
	page     int
	pageSize int
	columns  []string
	hide     []string
}

func newListCmd(flags *rootFlags) *cobra.Command {
	lf := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list <entity>",
		Short: "List one page of customers, products or categories",
		Long: `List one page of an entity type after filtering, searching and sorting.

Filters have the form column:operator:value, or column:value for the
column's default operator. Operators by column type:
  text    contains, equals, startsWith, endsWith
  number  equals, notEquals, gt, lt, between (value low,high)
  enum    memberOf (value a,b,c)
Repeated filters are combined with AND.`,
		Example: `  datatable list customers --filter status:memberOf:active,lead --sort spent:desc
  datatable list products --filter price:between:10,100 --columns name,price,stock`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(e *env) error {
				return e.open(args[0], handlers{
					customers:  listRows[types.Customer](e, lf),
					products:   listRows[types.Product](e, lf),
					categories: listRows[types.Category](e, lf),
				})
			})
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&lf.filters, "filter", nil, "filter as column:operator:value (repeatable)")
	f.StringVar(&lf.search, "search", "", "case-insensitive text matched against every text column")
	f.StringVar(&lf.sort, "sort", "", "sort as column[:asc|desc]")
	f.IntVar(&lf.page, "page", 1, "page number, starting at 1")
	f.IntVar(&lf.pageSize, "page-size", 0, "rows per page (default from config)")
	f.StringSliceVar(&lf.columns, "columns", nil, "columns to show, in order")
	f.StringArrayVar(&lf.hide, "hide", nil, "column to hide (repeatable)")
	return cmd
}

// listPage is the JSON form of one listed page.
type listPage[T any] struct {
	Entity    string         `json:"entity"`
	Page      int            `json:"page"`
	PageSize  int            `json:"page_size"`
	PageCount int            `json:"page_count"`
	Total     int            `json:"total"`
	Filters   []grid.Filter  `json:"filters,omitempty"`
	Sort      *grid.SortSpec `json:"sort,omitempty"`
	Rows      []T            `json:"rows"`
}

func listRows[T any](e *env, lf *listFlags) func(*catalog.Session[T]) error {
	return func(s *catalog.Session[T]) error {
		if err := applyListFlags(s.View, lf); err != nil {
			return userError(err)
		}
		snap := s.View.Snapshot()
		if e.json {
			return printJSON(e.out, listPage[T]{
				Entity:    s.Entity.Name,
				Page:      snap.PageIndex + 1,
				PageSize:  snap.PageSize,
				PageCount: snap.PageCount,
				Total:     snap.TotalRows,
				Filters:   s.View.ActiveFilters(),
				Sort:      snap.Sort,
				Rows:      snap.Rows,
			})
		}

		table := newTable(e.out, snap.Headers())
		for _, row := range snap.Rows {
			table.Append(snap.Cells(row))
		}
		table.Render()
		fmt.Fprintf(e.out, "Page %d of %d (%d of %d %s)\n",
			snap.PageIndex+1, max(snap.PageCount, 1), snap.TotalRows, snap.SourceRows, s.Entity.Name)
		return nil
	}
}

// applyListFlags drives the view the way a user would: filters, search,
// sort, page size, column layout and finally the page.
func applyListFlags[T any](v *grid.View[T, string], lf *listFlags) error {
	for _, raw := range lf.filters {
		f, err := parseFilter(raw, v.Model())
		if err != nil {
			return err
		}
		if err := v.AddFilter(f); err != nil {
			return err
		}
	}
	v.SetSearch(strings.TrimSpace(lf.search))

	if lf.sort != "" {
		spec, err := parseSort(lf.sort)
		if err != nil {
			return err
		}
		if err := v.SetSort(&spec); err != nil {
			return err
		}
	}
	if lf.pageSize != 0 {
		if !slices.Contains(grid.PageSizes, lf.pageSize) {
			return fmt.Errorf("page size %d must be one of %v: %w", lf.pageSize, grid.PageSizes, types.ErrInvalidPageSize)
		}
		if err := v.SetPageSize(lf.pageSize); err != nil {
			return err
		}
	}
	if len(lf.columns) > 0 {
		if err := showOnly(v, lf.columns); err != nil {
			return err
		}
	}
	for _, id := range lf.hide {
		if err := v.HideColumn(strings.TrimSpace(id)); err != nil {
			return fmt.Errorf("hide %s: %w", id, err)
		}
	}
	if lf.page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", lf.page)
	}
	v.SetPageIndex(lf.page - 1)
	return nil
}

// parseFilter reads column:operator:value or column:value. Values of
// between and memberOf are comma separated.
func parseFilter[T any](raw string, m *grid.ColumnModel[T]) (grid.Filter, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return grid.Filter{}, fmt.Errorf("filter %q: want column:operator:value", raw)
	}
	col, ok := m.Resolve(parts[0])
	if !ok {
		return grid.Filter{}, fmt.Errorf("filter %q: %w (columns: %s)", raw, types.ErrUnknownColumn, strings.Join(m.AllIDs(), ", "))
	}

	op, value := grid.DefaultOperator(col.Type), parts[1]
	if len(parts) == 3 {
		op, value = grid.Operator(parts[1]), parts[2]
	}

	var operand any = value
	switch op {
	case grid.OpBetween:
		bounds := strings.Split(value, ",")
		if len(bounds) != 2 {
			return grid.Filter{}, fmt.Errorf("filter %q: between takes low,high", raw)
		}
		operand = []any{strings.TrimSpace(bounds[0]), strings.TrimSpace(bounds[1])}
	case grid.OpMemberOf:
		members := strings.Split(value, ",")
		for i := range members {
			members[i] = strings.TrimSpace(members[i])
		}
		operand = members
	}

	f := grid.NewFilter(col.ID, op, operand)
	if err := grid.ValidateFilter(f, m); err != nil {
		var fe *types.InvalidFilterError
		if errors.As(err, &fe) && errors.Is(err, types.ErrInvalidOperator) {
			return grid.Filter{}, fmt.Errorf("%w (operators: %v)", err, grid.OperatorsFor(col.Type))
		}
		return grid.Filter{}, err
	}
	return f, nil
}

// parseSort reads column[:asc|desc].
func parseSort(raw string) (grid.SortSpec, error) {
	id, dir, _ := strings.Cut(raw, ":")
	spec := grid.SortSpec{ColumnID: strings.TrimSpace(id), Direction: grid.Asc}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
	case "desc":
		spec.Direction = grid.Desc
	default:
		return grid.SortSpec{}, fmt.Errorf("sort %q: direction must be asc or desc", raw)
	}
	return spec, nil
}

// showOnly orders the listed columns first and hides the rest. Columns that
// cannot be hidden stay visible after them.
func showOnly[T any](v *grid.View[T, string], ids []string) error {
	keep := make(map[string]bool, len(ids))
	order := make([]string, 0, v.Model().Len())
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := v.Model().Resolve(id); !ok {
			return fmt.Errorf("column %q: %w", id, types.ErrUnknownColumn)
		}
		if !keep[id] {
			keep[id] = true
			order = append(order, id)
		}
	}
	for _, id := range v.Model().AllIDs() {
		if !keep[id] {
			order = append(order, id)
		}
	}
	if err := v.SetColumnOrder(order); err != nil {
		return err
	}
	for _, id := range order[len(keep):] {
		if err := v.HideColumn(id); err != nil && !errors.Is(err, types.ErrColumnNotHideable) {
			return err
		}
	}
	return nil
}
