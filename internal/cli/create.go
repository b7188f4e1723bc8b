package cli

import (
	"github.com/spf13/cobra"

	"github.com/mokka-studios/datatable/internal/catalog"
	"github.com/mokka-studios/datatable/pkg/types"
)

func newCreateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "create <entity> key=value...",
		Short:   "Create a row",
		Example: "  datatable create customers name='Hedy Lamarr' email=hedy@example.com status=lead",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments := args[1:]
			return withEnv(cmd, flags, func(e *env) error {
				return e.open(args[0], handlers{
					customers:  createRow[types.Customer](e, assignments),
					products:   createRow[types.Product](e, assignments),
					categories: createRow[types.Category](e, assignments),
				})
			})
		},
	}
}

func createRow[T any](e *env, assignments []string) func(*catalog.Session[T]) error {
	return func(s *catalog.Session[T]) error {
		created, err := s.Create(e.ctx, assignments)
		if err != nil {
			return err
		}
		if e.json {
			return printJSON(e.out, created)
		}
		printFields(e.out, s.Fields(created))
		return nil
	}
}
