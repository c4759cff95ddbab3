package cmd

import (
	"fmt"

	"github.com/graang/graang/internal/analyzer"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a Datadog dashboard without converting it",
	Long: `Analyze a Datadog dashboard export and print a structural report:
widget and query counts, visualization types, metric sources, template
variables and the full widget hierarchy.

Useful for sizing up a dashboard before conversion.

Examples:
  graang analyze dashboard.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analysis, err := analyzer.AnalyzeFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to analyze dashboard: %w", err)
		}

		fmt.Println(analysis.Report())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
