// ABOUTME: Trailbook configuration management
// ABOUTME: Merges the JSON config file, .env files, and TRAILBOOK_* environment variables

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/trailbook/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. TRAILBOOK_API_URL.
const EnvPrefix = "TRAILBOOK"

// Keys recognized in the config file and environment.
const (
	KeyAPIURL   = "api_url"
	KeyAPIToken = "api_token"
	KeyDataDir  = "data_dir"
	KeyLogLevel = "log_level"
)

// Keys lists every settable key in display order.
var Keys = []string{KeyAPIURL, KeyAPIToken, KeyDataDir, KeyLogLevel}

// Config stores trailbook configuration.
type Config struct {
	// APIURL is the base URL of the trail service, e.g. https://trails.example.com/api.
	APIURL string `json:"api_url,omitempty" mapstructure:"api_url"`

	// APIToken is sent as a bearer token when set.
	APIToken string `json:"api_token,omitempty" mapstructure:"api_token"`

	// DataDir is the root directory for the local trace library.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/trailbook.
	DataDir string `json:"data_dir,omitempty" mapstructure:"data_dir"`

	// LogLevel is one of error, warn, info, debug. Defaults to warn.
	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// defaultDataDir returns the default XDG data directory for trailbook.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "trailbook")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DBPath returns the trace library location inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), storage.DBFilename)
}

// OpenStorage opens the local trace library.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return storage.NewSQLiteDB(c.DBPath())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "trailbook", "config.json")
}

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are ignored. Variables already set are not overridden.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(GetConfigPath())
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Unmarshal only sees environment values for keys viper already knows.
	for _, key := range Keys {
		v.SetDefault(key, "")
	}
	return v
}

// Load reads config from disk and applies environment overrides.
// A missing config file yields defaults.
func Load() (*Config, error) {
	v := newViper()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// loadFile reads only the config file, without environment overrides.
func loadFile() (*Config, error) {
	data, err := os.ReadFile(GetConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Set updates one key in the config file and saves it.
// Environment overrides are not written back.
func Set(key, value string) error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	switch key {
	case KeyAPIURL:
		cfg.APIURL = value
	case KeyAPIToken:
		cfg.APIToken = value
	case KeyDataDir:
		cfg.DataDir = value
	case KeyLogLevel:
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown config key %q (use %s)", key, strings.Join(Keys, ", "))
	}
	return cfg.Save()
}

// Save writes config to disk atomically.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user config directory
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// Redacted returns a copy safe for display, with the token masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.APIToken != "" {
		out.APIToken = "********"
	}
	return out
}
