package cli

import (
	"github.com/spf13/cobra"

	"github.com/mokka-studios/datatable/internal/catalog"
	"github.com/mokka-studios/datatable/pkg/types"
)

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <entity> <id>",
		Short: "Show every field of one row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(e *env) error {
				return e.open(args[0], handlers{
					customers:  showRow[types.Customer](e, args[1]),
					products:   showRow[types.Product](e, args[1]),
					categories: showRow[types.Category](e, args[1]),
				})
			})
		},
	}
}

func showRow[T any](e *env, id string) func(*catalog.Session[T]) error {
	return func(s *catalog.Session[T]) error {
		if e.json {
			row, err := s.Row(e.ctx, id)
			if err != nil {
				return err
			}
			return printJSON(e.out, row)
		}
		fields, err := s.Preview(e.ctx, id)
		if err != nil {
			return err
		}
		printFields(e.out, fields)
		return nil
	}
}
