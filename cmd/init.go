package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/graang/graang/internal/config"
	"github.com/spf13/cobra"
)

var (
	initPath string
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a starter graang configuration file populated with the
defaults. The file goes to $HOME/.config/graang/graang.yaml unless
--path is given. An existing file is never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := initPath
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to find home directory: %w", err)
			}
			path = filepath.Join(home, ".config", "graang", "graang.yaml")
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		defaults := config.Default()
		content := fmt.Sprintf(`# graang configuration
log_level: %s

# Datasource name and uid written into every panel
datasource: %s

# Folder title used for import payloads
folder: %s

# Default dashboard time window
time_from: %s
time_to: %s

# Dashboard refresh interval
refresh: %s

# Conversion history database
history_db: %s

# Concurrent conversions for batch runs
jobs: %d
`, defaults.LogLevel, defaults.Datasource, defaults.Folder,
			defaults.TimeFrom, defaults.TimeTo, defaults.Refresh,
			defaults.HistoryDB, defaults.Jobs)

		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Printf("Created config file %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initPath, "path", "", "where to write the config file")
}
