package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize datatable storage",
		Long:  "Create the configuration and data directories, write config.yaml and seed the demo data.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(e *env) error {
				if e.json {
					return printJSON(e.out, e.cfg)
				}
				fmt.Fprintf(e.out, "Datatable initialized in %s\n", e.cfg.DataDir)
				return nil
			})
		},
	}
}
