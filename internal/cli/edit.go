package cli

import (
	"github.com/spf13/cobra"

	"github.com/mokka-studios/datatable/internal/catalog"
	"github.com/mokka-studios/datatable/pkg/types"
)

func newEditCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "edit <entity> <id> key=value...",
		Short:   "Change fields of one row",
		Example: "  datatable edit customers 0190c1d2-... city=Paris status=inactive",
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, assignments := args[1], args[2:]
			return withEnv(cmd, flags, func(e *env) error {
				return e.open(args[0], handlers{
					customers:  editRow[types.Customer](e, id, assignments),
					products:   editRow[types.Product](e, id, assignments),
					categories: editRow[types.Category](e, id, assignments),
				})
			})
		},
	}
}

func editRow[T any](e *env, id string, assignments []string) func(*catalog.Session[T]) error {
	return func(s *catalog.Session[T]) error {
		saved, err := s.Edit(e.ctx, id, assignments)
		if err != nil {
			return err
		}
		if e.json {
			return printJSON(e.out, saved)
		}
		return nil
	}
}
