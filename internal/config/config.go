package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/graang/graang/internal/model"
	"github.com/graang/graang/internal/runner"
	"github.com/graang/graang/internal/storage"
	"github.com/graang/graang/internal/translator"
	"github.com/graang/graang/internal/utils/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// EnvDatasource is the environment variable overriding the target datasource
	EnvDatasource = "GRAANG_DATASOURCE"

	// EnvHistoryDB is the environment variable overriding the history database path
	EnvHistoryDB = "GRAANG_HISTORY_DB"

	// EnvJobs is the environment variable overriding batch concurrency
	EnvJobs = "GRAANG_JOBS"
)

// Config represents the top-level graang configuration
type Config struct {
	LogLevel   string `yaml:"log_level"`
	Datasource string `yaml:"datasource"`
	Folder     string `yaml:"folder"`
	TimeFrom   string `yaml:"time_from"`
	TimeTo     string `yaml:"time_to"`
	Refresh    string `yaml:"refresh"`
	HistoryDB  string `yaml:"history_db"`
	Jobs       int    `yaml:"jobs"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Datasource: translator.DefaultDatasource,
		Folder:     translator.DefaultFolder,
		TimeFrom:   translator.DefaultTimeFrom,
		TimeTo:     translator.DefaultTimeTo,
		Refresh:    model.DefaultRefresh,
		HistoryDB:  storage.DefaultStorePath(),
		Jobs:       runner.DefaultJobs,
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides settings from environment variables
func (c *Config) ApplyEnv() {
	if ds := os.Getenv(EnvDatasource); ds != "" {
		c.Datasource = ds
		logger.Debug("Using datasource from environment", zap.String("datasource", ds))
	}

	if db := os.Getenv(EnvHistoryDB); db != "" {
		c.HistoryDB = db
		logger.Debug("Using history database from environment", zap.String("path", db))
	}

	if j := os.Getenv(EnvJobs); j != "" {
		jobs, err := strconv.Atoi(j)
		if err != nil || jobs <= 0 {
			logger.Warn("Ignoring invalid job count in environment",
				zap.String("value", j),
				zap.Int("default", c.Jobs))
		} else {
			c.Jobs = jobs
			logger.Debug("Using job count from environment", zap.Int("jobs", jobs))
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Datasource == "" {
		return fmt.Errorf("datasource is required")
	}

	if c.TimeFrom == "" || c.TimeTo == "" {
		return fmt.Errorf("time range is required")
	}

	if c.Jobs < 0 {
		return fmt.Errorf("jobs cannot be negative")
	}

	return nil
}

// TranslatorOptions bridges the configuration to conversion options
func (c *Config) TranslatorOptions() translator.Options {
	return translator.Options{
		Datasource: c.Datasource,
		Folder:     c.Folder,
		TimeFrom:   c.TimeFrom,
		TimeTo:     c.TimeTo,
		Refresh:    c.Refresh,
	}
}
