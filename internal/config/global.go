// Where: internal/config/global.go
// What: Global config load/save helpers.
// Why: Manage ~/.xmanager/config.yaml consistently.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GeoffNN/xmanager/internal/envutil"
	"github.com/GeoffNN/xmanager/internal/meta"
)

// GlobalConfig represents the ~/.xmanager/config.yaml global configuration.
type GlobalConfig struct {
	Version      int           `yaml:"version"`
	BaseImage    string        `yaml:"base_image,omitempty"`
	Registry     string        `yaml:"registry,omitempty"`
	BazelCommand string        `yaml:"bazel_command,omitempty"`
	Storage      StorageConfig `yaml:"storage,omitempty"`
}

// StorageConfig selects where experiment metadata and artifacts go. When
// Table and Bucket are empty, storage is disabled.
type StorageConfig struct {
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
	Table    string `yaml:"table,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`
}

// Enabled reports whether experiment storage is configured.
func (s StorageConfig) Enabled() bool {
	return s.Table != "" || s.Bucket != ""
}

// DefaultGlobalConfig returns an initialized GlobalConfig with version set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{Version: 1}
}

// GlobalConfigPath returns the path to the global config file.
// Respects XM_CONFIG_PATH and XM_CONFIG_HOME environment variables.
func GlobalConfigPath() (string, error) {
	if override := strings.TrimSpace(envutil.GetHostEnv("CONFIG_PATH")); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	if override := strings.TrimSpace(envutil.GetHostEnv("CONFIG_HOME")); override != "" {
		return filepath.Join(override, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, meta.HomeDir, "config.yaml"), nil
}

// LoadGlobalConfig reads the global config, returning defaults when the
// file does not exist.
func LoadGlobalConfig() (GlobalConfig, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		return GlobalConfig{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultGlobalConfig(), nil
	}
	if err != nil {
		return GlobalConfig{}, err
	}
	cfg := DefaultGlobalConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GlobalConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	return cfg, nil
}

// SaveGlobalConfig writes the global config, creating its directory.
func SaveGlobalConfig(cfg GlobalConfig) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// EnsureGlobalConfig creates the global config file if it doesn't exist.
func EnsureGlobalConfig() error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return SaveGlobalConfig(DefaultGlobalConfig())
}
