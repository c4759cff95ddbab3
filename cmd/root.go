package cmd

import (
	"fmt"
	"os"

	"github.com/graang/graang/internal/config"
	"github.com/graang/graang/internal/utils/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile   string
	logLevel  string
	appConfig = config.Default()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "graang",
	Short: "Convert Datadog dashboards to Grafana",
	Long: `graang converts Datadog dashboard exports into Grafana dashboard
definitions. It rewrites Datadog metric queries into PromQL-style
expressions, maps widgets onto Grafana's 24-column grid, and reports
everything that needs manual review after the import.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/graang/graang.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name "graang" (without extension).
		viper.AddConfigPath(home + "/.config/graang")
		viper.SetConfigType("yaml")
		viper.SetConfigName("graang")
	}

	viper.AutomaticEnv() // read in environment variables that match

	var loadErr error
	found := viper.ReadInConfig() == nil
	if found {
		cfg, err := config.LoadFromFile(viper.ConfigFileUsed())
		if err == nil {
			appConfig = cfg
		} else {
			loadErr = err
		}
	}
	appConfig.ApplyEnv()

	// The flag wins over the config file when given explicitly
	if !rootCmd.PersistentFlags().Changed("log-level") && appConfig.LogLevel != "" {
		logLevel = appConfig.LogLevel
	}

	// Initialize the logger
	if err := logger.Init(logLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if loadErr != nil {
		logger.Warn("Ignoring malformed config file",
			zap.String("file", viper.ConfigFileUsed()),
			zap.Error(loadErr))
	} else if found {
		logger.Info("Using config file", zap.String("file", viper.ConfigFileUsed()))
	}
}
