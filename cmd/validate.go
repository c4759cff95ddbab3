package cmd

import (
	"fmt"
	"os"

	"github.com/graang/graang/internal/translator"
	"github.com/graang/graang/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a Datadog dashboard before conversion",
	Long: `Validate a Datadog dashboard export before converting it.

This command checks for conditions that block or degrade a conversion:
- Dashboards with no widgets
- Widget types that only convert to text placeholders
- Queries that pass through without a clean rewrite
- Duplicate or unnamed template variables

Examples:
  # Validate a dashboard export
  graang validate dashboard.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dashboard, err := translator.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}

		v := validator.NewValidator(dashboard)
		result := v.Validate()

		fmt.Println(result.Format())

		// Exit with error code if validation failed
		if !result.Valid {
			os.Exit(1)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
