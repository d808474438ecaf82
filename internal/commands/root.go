package commands

import (
	"github.com/spf13/cobra"

	"github.com/ssra-dev/revenue/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "ssra",
		Short:   "Tax assessment and billing for the SSRA citizen portal",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", ".", "workspace directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newBillsCommand(&dir),
		newEstimateCommand(&dir),
		newAssessCommand(&dir),
		newShowCommand(&dir),
		newPayCommand(&dir),
		newOverdueCommand(&dir),
		newPRNCommand(&dir),
		newReconcileCommand(&dir),
	)

	return rootCmd
}
