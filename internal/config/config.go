// Package config holds the runtime configuration for a merge run, with
// Viper-backed loading from config file, environment, and flags.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Defaults for everything the operator does not set.
const (
	DefaultOutputDir       = "out"
	DefaultAugmentedFile   = "augmented.csv"
	DefaultDiagnosticsFile = "diagnostics.json"
	DefaultSampleLimit     = 10
	DefaultDuplicatePolicy = "last_wins"
)

// Config is the fully resolved configuration for a run.
type Config struct {
	// Source endpoints. Empty means the source's published default.
	ECTStaticBase string `mapstructure:"ect_static_base"`
	ECTStatsBase  string `mapstructure:"ect_stats_base"`
	Vote62URL     string `mapstructure:"vote62_url"`

	// CachePath is the SQLite payload cache file. Empty disables caching.
	CachePath string `mapstructure:"cache_path"`

	// Output locations. Files are relative to OutputDir unless absolute.
	OutputDir       string `mapstructure:"output_dir"`
	AugmentedFile   string `mapstructure:"augmented_file"`
	DiagnosticsFile string `mapstructure:"diagnostics_file"`

	// Reconciliation knobs.
	DuplicatePolicy string `mapstructure:"duplicate_policy"`
	NameFallback    bool   `mapstructure:"name_fallback"`
	SampleLimit     int    `mapstructure:"sample_limit"`

	// Logging.
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// SetDefaults registers the default values on a Viper instance. Call before
// reading the config file so unset keys resolve.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("augmented_file", DefaultAugmentedFile)
	v.SetDefault("diagnostics_file", DefaultDiagnosticsFile)
	v.SetDefault("duplicate_policy", DefaultDuplicatePolicy)
	v.SetDefault("sample_limit", DefaultSampleLimit)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "auto")
}

// Load resolves a Config from a Viper instance.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetString checks both the OS environment and Viper configuration. Viper
// wins when both are set; a bare environment variable still resolves even
// when the key was never bound.
func GetString(key string) string {
	viperValue := viper.GetString(key)
	if viperValue != "" {
		return viperValue
	}
	return os.Getenv(strings.ToUpper(key))
}
