package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the tagsvc CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tagsvc",
		Short: "Store tag service",
		Long:  "REST service managing tags on the items of a multi-store inventory.",
		// Errors are printed by main.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewTokenCommand())

	return cmd
}
