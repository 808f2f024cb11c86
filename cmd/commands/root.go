package commands

// Root command for the Cobra CLI.
// Registers the render and collect subcommands.

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "actions-graph",
	Short: "GitHub Actions job concurrency charts",
	Long: `actions-graph collects GitHub Actions workflow usage and renders job
concurrency over time as a PNG line chart.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(collectCmd)
}
