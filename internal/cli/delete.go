package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mokka-studios/datatable/internal/catalog"
	"github.com/mokka-studios/datatable/pkg/types"
)

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <entity> <id>...",
		Short: "Delete one or more rows",
		Long:  "Delete rows by id. Without --yes the command asks for confirmation.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := args[1:]
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %d %s?", len(ids), args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			return withEnv(cmd, flags, func(e *env) error {
				return e.open(args[0], handlers{
					customers:  deleteRows[types.Customer](e, ids),
					products:   deleteRows[types.Product](e, ids),
					categories: deleteRows[types.Category](e, ids),
				})
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks a yes/no question on out and reads the answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// deleteRows deletes one row through its confirm dialog, or several as a
// bulk delete of the selection.
func deleteRows[T any](e *env, ids []string) func(*catalog.Session[T]) error {
	return func(s *catalog.Session[T]) error {
		if len(ids) == 1 {
			return s.Delete(e.ctx, ids[0])
		}
		for _, id := range ids {
			if _, ok := s.View.Row(id); !ok {
				return fmt.Errorf("%s %s: %w", s.Entity.Name, id, types.ErrNotFound)
			}
			s.View.SetSelected(id, true)
		}
		_, err := s.Dispatcher.DeleteSelected(e.ctx)
		return err
	}
}
