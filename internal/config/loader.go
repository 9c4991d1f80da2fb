//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "sparse-emb-util.yaml"

	// SystemConfigPath is the system-wide configuration path.
	SystemConfigPath = "/etc/sparse-emb-util/" + ConfigFileName
)

// Load loads the configuration from the specified path, or searches
// default locations if path is empty. When no file exists anywhere,
// the defaults are returned: the tool works without configuration.
//
// Search order:
//  1. Explicit path (if provided)
//  2. /etc/sparse-emb-util/sparse-emb-util.yaml
//  3. sparse-emb-util.yaml in the binary's directory
func Load(path string) (*Config, error) {
	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		cfg := DefaultConfig()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}

	return loadFromFile(configPath)
}

// findConfigFile finds the configuration file using the search order.
// An empty result with nil error means "use defaults".
func findConfigFile(explicitPath string) (string, error) {
	// If explicit path provided, it must exist
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	searchPaths := []string{
		SystemConfigPath,
		getBinaryDirConfigPath(),
	}

	for _, p := range searchPaths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// getBinaryDirConfigPath returns the path to the config file in the
// binary's directory.
func getBinaryDirConfigPath() string {
	executable, err := os.Executable()
	if err != nil {
		return ""
	}

	// Resolve symlinks to get the actual binary location
	executable, err = filepath.EvalSymlinks(executable)
	if err != nil {
		return ""
	}

	return filepath.Join(filepath.Dir(executable), ConfigFileName)
}

// loadFromFile loads and parses the configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults; keys absent from the file keep them
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
