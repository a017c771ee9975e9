package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/enclaveops/epctop/internal/errors"
	"github.com/spf13/viper"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'epctop init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .epctop.yaml in current directory
// 3. ~/.config/epctop/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Global config
	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if not
// found. The dashboard must start without any config file present.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults seeds viper so partial config files merge over defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("interval", "1s")
	v.SetDefault("feeds.global", "/proc/sgx_stats")
	v.SetDefault("feeds.enclaves", "/proc/sgx_enclaves")
	v.SetDefault("feeds.read_timeout", "500ms")
	v.SetDefault("sort.column", "resident")
	v.SetDefault("sort.direction", "desc")
	v.SetDefault("failure_threshold", 3)
	v.SetDefault("color", "auto")
}

// validate rejects settings the dashboard cannot run with.
func validate(cfg *Config) error {
	if cfg.Interval < 100*time.Millisecond {
		return errors.New(errors.ErrConfig,
			"Refresh interval too short",
			"Minimum interval is 100ms; use something like 1s")
	}
	if cfg.FailureThreshold < 1 {
		return errors.New(errors.ErrConfig,
			"failure_threshold must be at least 1",
			"Use 3 unless you have a reason not to")
	}
	switch cfg.Sort.Column {
	case "id", "pid", "admit", "resident", "swapped", "uptime":
	default:
		return errors.New(errors.ErrConfig,
			"Unknown sort column: "+cfg.Sort.Column,
			"Valid columns: id, pid, admit, resident, swapped, uptime")
	}
	switch cfg.Sort.Direction {
	case "asc", "desc":
	default:
		return errors.New(errors.ErrConfig,
			"Unknown sort direction: "+cfg.Sort.Direction,
			"Use 'asc' or 'desc'")
	}
	return nil
}
