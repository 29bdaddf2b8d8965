// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatbot-tui.
//
// Supports both TOML and JSON configuration formats, with defaults, a .env
// file, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - --config PATH
//   - ~/.chatbot/config.toml
//   - ~/.chatbot/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeranaias/chatbot-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chatbot-tui configuration.
type Config struct {
	// Chat endpoint
	Endpoint EndpointConfig `toml:"endpoint" json:"endpoint"`

	// Transcript persistence
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Presentation
	UI UIConfig `toml:"ui" json:"ui"`

	// Diagnostics
	Log LogConfig `toml:"log" json:"log"`
}

// EndpointConfig describes the remote chat endpoint.
type EndpointConfig struct {
	// URL receives POST {"user_message": ...} and answers {"bot_response": ...}
	URL string `toml:"url" json:"url"`
	// TimeoutSecs bounds a single request; an expired request settles as a failure
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// Timeout returns the request timeout as a duration.
func (e EndpointConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSecs) * time.Second
}

// StorageConfig selects the durable key-value store for the transcript.
type StorageConfig struct {
	// Backend is one of: file, sqlite, redis, memory
	Backend string `toml:"backend" json:"backend"`
	// Path is the data directory (file) or database file (sqlite).
	// Empty means the default under ConfigDir.
	Path string `toml:"path" json:"path"`
	// Key is the single key holding the serialized log
	Key string `toml:"key" json:"key"`
	// RedisAddr is host:port of the redis server (redis backend only)
	RedisAddr string `toml:"redis_addr" json:"redis_addr"`
	// RedisPrefix namespaces keys in a shared redis
	RedisPrefix string `toml:"redis_prefix" json:"redis_prefix"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme is "auto", "light" or "dark"
	Theme string `toml:"theme" json:"theme"`
	// Markdown renders bot replies with glamour
	Markdown bool `toml:"markdown" json:"markdown"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	// Level is a zerolog level name (trace, debug, info, warn, error, disabled)
	Level string `toml:"level" json:"level"`
	// Path of the log file. Empty means ConfigDir/chatbot.log.
	Path string `toml:"path" json:"path"`
	// MaxSizeMB rotates the log file after this size
	MaxSizeMB int `toml:"max_size_mb" json:"max_size_mb"`
	// MaxBackups is the number of rotated files kept
	MaxBackups int `toml:"max_backups" json:"max_backups"`
	// Console also writes human-readable logs to stderr (CLI commands only)
	Console bool `toml:"console" json:"console"`
}

// Storage backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultStorageKey matches the key used by the web client.
const DefaultStorageKey = "chatMessages"

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			URL:         "http://localhost:8000/chat",
			TimeoutSecs: 60,
		},
		Storage: StorageConfig{
			Backend:     BackendFile,
			Key:         DefaultStorageKey,
			RedisAddr:   "127.0.0.1:6379",
			RedisPrefix: "chatbot:",
		},
		UI: UIConfig{
			Theme:    "auto",
			Markdown: true,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// ConfigDir returns the chatbot-tui directory. CHATBOT_HOME overrides the
// default of ~/.chatbot.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CHATBOT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not determine home directory")
	}
	return filepath.Join(home, ".chatbot"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// StoragePath returns the effective data location for the configured backend.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	switch c.Storage.Backend {
	case BackendSQLite:
		return filepath.Join(dir, "transcript.db"), nil
	default:
		return filepath.Join(dir, "data"), nil
	}
}

// LogPath returns the effective log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chatbot.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration. An explicit path must exist; otherwise the
// default TOML then JSON locations are tried and defaults are used when
// neither exists. The .env file and environment overrides are applied last.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()
	for _, locate := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		candidate, err := locate()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(candidate); statErr != nil {
			continue
		}
		if err := loadFile(cfg, candidate); err != nil {
			return nil, err
		}
		break
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	return finish(cfg)
}

func loadFile(cfg *Config, path string) error {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return errors.Wrapf(err, "failed to load JSON config from %s", path)
		}
		return nil
	}
	if err := LoadTOML(cfg, path); err != nil {
		return errors.Wrapf(err, "failed to load TOML config from %s", path)
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	LoadDotEnv()
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file on top of cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return errors.Wrap(err, "failed to decode TOML file")
	}
	return nil
}

// LoadJSON decodes a JSON file on top of cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read JSON file")
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(err, "failed to decode JSON file")
	}
	return nil
}

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Endpoint.URL == "" {
		cfg.Endpoint.URL = defaults.Endpoint.URL
	}
	if cfg.Endpoint.TimeoutSecs == 0 {
		cfg.Endpoint.TimeoutSecs = defaults.Endpoint.TimeoutSecs
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = defaults.Storage.Key
	}
	if cfg.Storage.RedisAddr == "" {
		cfg.Storage.RedisAddr = defaults.Storage.RedisAddr
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	cfg.UI.Theme = strings.ToLower(cfg.UI.Theme)

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = defaults.Log.MaxSizeMB
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = defaults.Log.MaxBackups
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHATBOT_ENDPOINT: overrides endpoint.url
//   - CHATBOT_TIMEOUT: overrides endpoint.timeout_secs
//   - CHATBOT_STORE: overrides storage.backend
//   - CHATBOT_STORE_PATH: overrides storage.path
//   - CHATBOT_REDIS_ADDR: overrides storage.redis_addr
//   - CHATBOT_THEME: overrides ui.theme
//   - CHATBOT_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if endpoint := os.Getenv("CHATBOT_ENDPOINT"); endpoint != "" {
		c.Endpoint.URL = endpoint
	}
	if timeout := os.Getenv("CHATBOT_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			c.Endpoint.TimeoutSecs = secs
		}
	}
	if backend := os.Getenv("CHATBOT_STORE"); backend != "" {
		c.Storage.Backend = backend
	}
	if path := os.Getenv("CHATBOT_STORE_PATH"); path != "" {
		c.Storage.Path = path
	}
	if addr := os.Getenv("CHATBOT_REDIS_ADDR"); addr != "" {
		c.Storage.RedisAddr = addr
	}
	if theme := os.Getenv("CHATBOT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if level := os.Getenv("CHATBOT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Endpoint.URL)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{"endpoint.url", err.Error()})
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, ValidationError{"endpoint.url", fmt.Sprintf("unsupported scheme '%s', must be http or https", u.Scheme)})
	case u.Host == "":
		errs = append(errs, ValidationError{"endpoint.url", "missing host"})
	}

	if c.Endpoint.TimeoutSecs < 1 || c.Endpoint.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{"endpoint.timeout_secs", fmt.Sprintf("%d out of range 1-600", c.Endpoint.TimeoutSecs)})
	}

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			errs = append(errs, ValidationError{"storage.redis_addr", "required for the redis backend"})
		}
	default:
		errs = append(errs, ValidationError{"storage.backend", fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite, redis, memory", c.Storage.Backend)})
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, ValidationError{"storage.key", "must not be empty"})
	}

	switch c.UI.Theme {
	case "auto", "light", "dark":
	default:
		errs = append(errs, ValidationError{"ui.theme", fmt.Sprintf("invalid theme '%s', must be one of: auto, light, dark", c.UI.Theme)})
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("unknown level '%s'", c.Log.Level)})
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		errs = append(errs, ValidationError{"log", "max_size_mb and max_backups must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// SAVE / DISPLAY
// =============================================================================

// SaveTOML writes the configuration to path with owner-only permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# chatbot-tui configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
