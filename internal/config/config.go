// Package config loads run configuration from a file and IRFITTER_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"source-irfitter/internal/engine"
)

// Sentinel validation errors.
var (
	ErrInvalidJobs        = errors.New("jobs must not be negative")
	ErrInvalidSuggestions = errors.New("max suggestions must not be negative")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidFormat      = errors.New("invalid format")
)

// EnvPrefix prefixes every environment override, e.g. IRFITTER_MATCHING_JOBS.
const EnvPrefix = "IRFITTER"

const defaultMaxSuggestions = 3

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"text", "json"}
	reportFormats = []string{"yaml", "msgpack"}
)

// Config holds all configuration for a run.
type Config struct {
	Matching MatchingConfig `mapstructure:"matching"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Output   OutputConfig   `mapstructure:"output"`
}

// MatchingConfig controls the engine.
type MatchingConfig struct {
	// Jobs is the job parallelism; zero means one per CPU.
	Jobs           int  `mapstructure:"jobs"`
	Heuristic      bool `mapstructure:"heuristic"`
	Positional     bool `mapstructure:"positional"`
	MaxSuggestions int  `mapstructure:"max_suggestions"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	Compress    bool   `mapstructure:"compress"`
	Color       bool   `mapstructure:"color"`
	MetricsFile string `mapstructure:"metrics_file"`
}

// LoadConfig loads configuration from file and environment variables. An
// empty path searches the working directory for irfitter.yaml and tolerates
// its absence.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("irfitter")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := Validate(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("matching.jobs", 0)
	viperCfg.SetDefault("matching.heuristic", true)
	viperCfg.SetDefault("matching.positional", true)
	viperCfg.SetDefault("matching.max_suggestions", defaultMaxSuggestions)

	viperCfg.SetDefault("logging.level", "warn")
	viperCfg.SetDefault("logging.format", "text")

	viperCfg.SetDefault("output.format", "yaml")
	viperCfg.SetDefault("output.compress", false)
	viperCfg.SetDefault("output.color", true)
	viperCfg.SetDefault("output.metrics_file", "")
}

// Validate checks value ranges and enumerations.
func Validate(config *Config) error {
	if config.Matching.Jobs < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidJobs, config.Matching.Jobs)
	}

	if config.Matching.MaxSuggestions < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSuggestions, config.Matching.MaxSuggestions)
	}

	if !slices.Contains(logLevels, strings.ToLower(config.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	if !slices.Contains(logFormats, config.Logging.Format) {
		return fmt.Errorf("%w: logging format %q", ErrInvalidFormat, config.Logging.Format)
	}

	if !slices.Contains(reportFormats, config.Output.Format) {
		return fmt.Errorf("%w: output format %q", ErrInvalidFormat, config.Output.Format)
	}

	return nil
}

// Engine returns the engine settings; logger and recorder are left for the
// caller to attach.
func (c *Config) Engine() engine.Config {
	cfg := engine.DefaultConfig()

	cfg.Heuristic = c.Matching.Heuristic
	cfg.Positional = c.Matching.Positional
	cfg.MaxSuggestions = c.Matching.MaxSuggestions

	cfg.Jobs = c.Matching.Jobs
	if cfg.Jobs == 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}

	return cfg
}
