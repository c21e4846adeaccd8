// Package config provides configuration management for the redistrict CLI.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for a redistrict run.
type Config struct {
	Plan   PlanConfig   `mapstructure:"plan"`
	Search SearchConfig `mapstructure:"search"`
	Log    LogConfig    `mapstructure:"log"`
}

// PlanConfig holds the input/output surface for a districting plan.
type PlanConfig struct {
	GraphPath       string `mapstructure:"graph_path"`
	AssignmentsPath string `mapstructure:"assignments_path"`
	NumDistricts    int    `mapstructure:"num_districts"`
	BalanceSeries   string `mapstructure:"balance_series"`
}

// SearchConfig holds the parameters shared by the randomize/equalize/
// anneal/tabu/recombine drivers.
type SearchConfig struct {
	Seed              int64   `mapstructure:"seed"`
	Tolerance         float64 `mapstructure:"tolerance"`
	MaxIter           int     `mapstructure:"max_iter"`
	InitialTemp       float64 `mapstructure:"initial_temp"`
	FinalTemp         float64 `mapstructure:"final_temp"`
	BoundaryFactor    float64 `mapstructure:"boundary_factor"`
	TabuTenure        int     `mapstructure:"tabu_tenure"`
	CandidatesPerIter int     `mapstructure:"candidates_per_iter"`
	CoolingRate       float64 `mapstructure:"cooling_rate"`
	EarlyStop         int     `mapstructure:"early_stop"`
	Window            int     `mapstructure:"window"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// Load reads configuration from configPath, falling back to "redistrict.yaml"
// in the current directory, then "/etc/redistrict/", then built-in defaults.
// Environment variables (prefixed REDISTRICT_) override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("redistrict")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/redistrict")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file present; defaults and env vars still apply.
		} else if os.IsNotExist(err) {
			// Explicit path missing; defaults and env vars still apply.
		} else {
			return nil, fmt.Errorf("config: Load: reading config: %w", err)
		}
	}

	v.SetEnvPrefix("REDISTRICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: Load: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: Load: %w", err)
	}
	return &cfg, nil
}

// LoadFromReader loads configuration of configType (e.g. "yaml") from raw
// content, for tests and embedded defaults.
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("config: LoadFromReader: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: LoadFromReader: unmarshal: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("plan.num_districts", 2)
	v.SetDefault("plan.balance_series", "pop")

	v.SetDefault("search.seed", 1)
	v.SetDefault("search.tolerance", 0.01)
	v.SetDefault("search.max_iter", 1000)
	v.SetDefault("search.initial_temp", 10.0)
	v.SetDefault("search.final_temp", 0.01)
	v.SetDefault("search.boundary_factor", 0.2)
	v.SetDefault("search.tabu_tenure", 20)
	v.SetDefault("search.candidates_per_iter", 8)
	v.SetDefault("search.cooling_rate", 0.01)
	v.SetDefault("search.early_stop", 200)
	v.SetDefault("search.window", 50)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate checks the configuration for obviously unusable values.
func (c *Config) Validate() error {
	if c.Plan.NumDistricts < 1 {
		return fmt.Errorf("plan.num_districts must be at least 1")
	}
	if c.Plan.BalanceSeries == "" {
		return fmt.Errorf("plan.balance_series must be set")
	}
	if c.Search.MaxIter < 0 {
		return fmt.Errorf("search.max_iter must be non-negative")
	}
	return nil
}
