// Package config loads application configuration from YAML or TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joshribakoff/bearing-dash/internal/log"
	"github.com/joshribakoff/bearing-dash/internal/theme"
	"gopkg.in/yaml.v3"
)

// Keymap variants.
const (
	KeymapPanels = "panels"
	KeymapViews  = "views"
)

// Storage backends for persisted view state.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

const appDirName = "bearing-dash"

// AppConfig defines the global bearing-dash configuration options.
type AppConfig struct {
	APIURL                string `yaml:"api_url" toml:"api_url" jsonschema:"description=Base URL of the bearing daemon API"`
	Theme                 string `yaml:"theme" toml:"theme" jsonschema:"enum=dracula,enum=clean-light,enum=nord,enum=bearing"`
	Keymap                string `yaml:"keymap" toml:"keymap" jsonschema:"enum=panels,enum=views,description=panels: 0/1/2 focus panels; views: 1/2 switch views"`
	Storage               string `yaml:"storage" toml:"storage" jsonschema:"enum=file,enum=sqlite"`
	StatePath             string `yaml:"state_path" toml:"state_path" jsonschema:"description=Directory holding persisted view state"`
	ReconnectDelaySeconds int    `yaml:"reconnect_delay_seconds" toml:"reconnect_delay_seconds" jsonschema:"minimum=1"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds" toml:"request_timeout_seconds" jsonschema:"minimum=0"`
	GitHubOwner           string `yaml:"github_owner" toml:"github_owner" jsonschema:"description=Owner used to build PR and issue links"`
	DebugLog              string `yaml:"debug_log,omitempty" toml:"debug_log" jsonschema:"description=Path to debug log file"`
	ShowIcons             bool   `yaml:"show_icons" toml:"show_icons"`

	// Path is the file the configuration was read from, if any.
	Path string `yaml:"-" toml:"-" json:"-"`
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		APIURL:                "http://localhost:8374",
		Theme:                 theme.DefaultName(),
		Keymap:                KeymapPanels,
		Storage:               StorageFile,
		ReconnectDelaySeconds: 5,
		RequestTimeoutSeconds: 10,
		GitHubOwner:           "joshribakoff",
		ShowIcons:             true,
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "y", "on":
			return true
		case "false", "0", "no", "n", "off":
			return false
		}
	case int:
		return v != 0
	case int64:
		return v != 0
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return defaultVal
}

func trimmedString(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// apply merges the keys present in data into cfg.
func (cfg *AppConfig) apply(data map[string]any) {
	if v, ok := trimmedString(data["api_url"]); ok {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v, ok := trimmedString(data["theme"]); ok {
		if normalized := theme.NormalizeName(v); normalized != "" {
			cfg.Theme = normalized
		}
	}
	if v, ok := trimmedString(data["keymap"]); ok {
		switch v = strings.ToLower(v); v {
		case KeymapPanels, KeymapViews:
			cfg.Keymap = v
		}
	}
	if v, ok := trimmedString(data["storage"]); ok {
		switch v = strings.ToLower(v); v {
		case StorageFile, StorageSQLite:
			cfg.Storage = v
		}
	}
	if v, ok := trimmedString(data["state_path"]); ok {
		cfg.StatePath = v
	}
	if v, ok := trimmedString(data["github_owner"]); ok {
		cfg.GitHubOwner = v
	}
	if v, ok := trimmedString(data["debug_log"]); ok {
		cfg.DebugLog = v
	}
	if _, ok := data["reconnect_delay_seconds"]; ok {
		cfg.ReconnectDelaySeconds = coerceInt(data["reconnect_delay_seconds"], cfg.ReconnectDelaySeconds)
	}
	if _, ok := data["request_timeout_seconds"]; ok {
		cfg.RequestTimeoutSeconds = coerceInt(data["request_timeout_seconds"], cfg.RequestTimeoutSeconds)
	}
	if _, ok := data["show_icons"]; ok {
		cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
	}

	if cfg.ReconnectDelaySeconds < 1 {
		cfg.ReconnectDelaySeconds = 1
	}
	if cfg.RequestTimeoutSeconds < 0 {
		cfg.RequestTimeoutSeconds = 0
	}
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	cfg.apply(data)
	return cfg
}

// ApplyCLIOverrides applies repeated key=value overrides on top of the
// loaded configuration. Values are parsed as YAML scalars.
func (cfg *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data := map[string]any{}
	for _, override := range overrides {
		key, value, ok := strings.Cut(override, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("invalid override %q, expected key=value", override)
		}
		key = strings.TrimPrefix(key, "bd.")
		if !isKnownKey(key) {
			return fmt.Errorf("unknown config key %q", key)
		}
		var parsed any
		if err := yaml.Unmarshal([]byte(value), &parsed); err != nil || parsed == nil {
			parsed = value
		}
		if _, isString := parsed.(string); !isString && isStringKey(key) {
			parsed = value
		}
		data[key] = parsed
	}
	cfg.apply(data)
	return nil
}

// Keys lists every configuration key.
func Keys() []string {
	return []string{
		"api_url", "theme", "keymap", "storage", "state_path",
		"reconnect_delay_seconds", "request_timeout_seconds",
		"github_owner", "debug_log", "show_icons",
	}
}

func isKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func isStringKey(key string) bool {
	switch key {
	case "reconnect_delay_seconds", "request_timeout_seconds", "show_icons":
		return false
	}
	return true
}

// Dir returns the directory configuration files are looked up in.
func Dir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDirName)
}

// DefaultStateDir returns the directory persisted view state lives in.
func DefaultStateDir() string {
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return filepath.Join(xdgStateHome, appDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appDirName)
}

// ResolvedStateDir returns the configured state directory with ~ and
// environment variables expanded.
func (cfg *AppConfig) ResolvedStateDir() string {
	if cfg.StatePath == "" {
		return DefaultStateDir()
	}
	expanded, err := ExpandPath(cfg.StatePath)
	if err != nil {
		return cfg.StatePath
	}
	return expanded
}

// CandidatePaths returns the files LoadConfig tries, in order.
func CandidatePaths() []string {
	base := Dir()
	return []string{
		filepath.Join(base, "config.yaml"),
		filepath.Join(base, "config.yml"),
		filepath.Join(base, "config.toml"),
	}
}

// LoadConfig reads the application configuration. An explicit path wins;
// otherwise the first existing candidate in the config directory is used.
func LoadConfig(configPath string) (*AppConfig, error) {
	var paths []string
	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	} else {
		paths = CandidatePaths()
	}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if configPath != "" {
				return DefaultConfig(), fmt.Errorf("config file %s does not exist", path)
			}
			continue
		}
		cfg, err := loadFile(path)
		if err != nil {
			// invalid files fall back to defaults
			log.Warnf("config: %v, using defaults", err)
			cfg = DefaultConfig()
		}
		cfg.Path = path
		return cfg, nil
	}

	return DefaultConfig(), nil
}

func loadFile(path string) (*AppConfig, error) {
	// #nosec G304 -- path comes from the user's flag or the config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	raw := map[string]any{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return parseConfig(raw), nil
}

// Save writes cfg as YAML to path, creating parent directories.
func (cfg *AppConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
