package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Personal income, expense and budget tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "project directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newTxCommand(&dir),
		newBudgetCommand(&dir),
		newDashboardCommand(&dir),
		newReportCommand(&dir),
		newCategoriesCommand(),
		newLogCommand(&dir),
	)

	return rootCmd
}
