package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "finreport",
		Short:   "Generate statutory financial statements from accountant workbooks",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newGenerateCommand())

	return rootCmd
}
