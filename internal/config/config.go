package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Repo     RepoConfig     `mapstructure:"repo"`
	Matching MatchingConfig `mapstructure:"matching"`
	Triage   TriageConfig   `mapstructure:"triage"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// RepoConfig locates the document repository. The root is always passed
// explicitly (flag or config file), never read from the process
// environment.
type RepoConfig struct {
	Root string `mapstructure:"root"`
	// DocumentDirs are searched, in order, for the invoices/POs/contracts
	// directories. Relative entries are joined to Root.
	DocumentDirs []string `mapstructure:"document_dirs"`
	// LogDir is where system logs live, relative to Root.
	LogDir string `mapstructure:"log_dir"`
}

// MatchingConfig holds the fuzzy-match confidence thresholds.
type MatchingConfig struct {
	POMinConfidence       float64 `mapstructure:"po_min_confidence"`
	SupplierMinConfidence float64 `mapstructure:"supplier_min_confidence"`
}

// TriageConfig holds the routing thresholds.
type TriageConfig struct {
	HighValueThreshold float64 `mapstructure:"high_value_threshold"`
	LowConfidence      float64 `mapstructure:"low_confidence"`
	ReviewConfidence   float64 `mapstructure:"review_confidence"`
}

// BatchConfig holds batch-processing settings.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from an optional YAML file over built-in
// defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("repo.root", ".")
	v.SetDefault("repo.document_dirs", []string{"json_files", "."})
	v.SetDefault("repo.log_dir", "system_logs")

	v.SetDefault("matching.po_min_confidence", 0.7)
	v.SetDefault("matching.supplier_min_confidence", 0.8)

	v.SetDefault("triage.high_value_threshold", 10000.0)
	v.SetDefault("triage.low_confidence", 0.7)
	v.SetDefault("triage.review_confidence", 0.9)

	v.SetDefault("batch.workers", runtime.GOMAXPROCS(0))

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.format", "console")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Repo.Root == "" {
		return fmt.Errorf("repo.root is required")
	}
	inUnit := func(name string, v float64) error {
		if v <= 0 || v > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %v", name, v)
		}
		return nil
	}
	if err := inUnit("matching.po_min_confidence", c.Matching.POMinConfidence); err != nil {
		return err
	}
	if err := inUnit("matching.supplier_min_confidence", c.Matching.SupplierMinConfidence); err != nil {
		return err
	}
	if err := inUnit("triage.low_confidence", c.Triage.LowConfidence); err != nil {
		return err
	}
	if err := inUnit("triage.review_confidence", c.Triage.ReviewConfidence); err != nil {
		return err
	}
	if c.Triage.ReviewConfidence < c.Triage.LowConfidence {
		return fmt.Errorf("triage.review_confidence must not be below triage.low_confidence")
	}
	if c.Triage.HighValueThreshold <= 0 {
		return fmt.Errorf("triage.high_value_threshold must be positive")
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1")
	}
	return nil
}
