package config

import "time"

// ConfigFileName is the default config file name.
const ConfigFileName = ".epctop.yaml"

// GlobalConfigDir is the directory for global config, relative to $HOME.
const GlobalConfigDir = ".config/epctop"

// GlobalConfigFile is the global config file name.
const GlobalConfigFile = "config.yaml"

// Config represents the complete .epctop.yaml configuration file.
type Config struct {
	// Interval is the dashboard refresh period.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Feeds locates the kernel-exposed text feeds.
	Feeds FeedsConfig `yaml:"feeds" mapstructure:"feeds"`

	// Sort is the initial table ordering.
	Sort SortConfig `yaml:"sort" mapstructure:"sort"`

	// FailureThreshold is how many consecutive ticks both feeds may be
	// unavailable before the dashboard exits with a diagnostic.
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`

	// Color mode: "auto", "always", or "never".
	// "auto" disables color when the terminal does not support it.
	Color string `yaml:"color" mapstructure:"color"`
}

// FeedsConfig locates the two feed files.
type FeedsConfig struct {
	// Global is the path of the subsystem-wide counters feed.
	Global string `yaml:"global" mapstructure:"global"`

	// Enclaves is the path of the per-enclave listing feed.
	Enclaves string `yaml:"enclaves" mapstructure:"enclaves"`

	// ReadTimeout bounds a single feed read.
	ReadTimeout time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
}

// SortConfig is the startup table ordering.
type SortConfig struct {
	// Column: "id", "pid", "admit", "resident", "swapped", or "uptime".
	Column string `yaml:"column" mapstructure:"column"`

	// Direction: "asc" or "desc".
	Direction string `yaml:"direction" mapstructure:"direction"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval: time.Second,
		Feeds: FeedsConfig{
			Global:      "/proc/sgx_stats",
			Enclaves:    "/proc/sgx_enclaves",
			ReadTimeout: 500 * time.Millisecond,
		},
		Sort: SortConfig{
			Column:    "resident",
			Direction: "desc",
		},
		FailureThreshold: 3,
		Color:            "auto",
	}
}
