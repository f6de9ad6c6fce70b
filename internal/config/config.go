// Package config loads and saves the user's wad settings.
//
// Settings are layered: built-in defaults, then the optional config file,
// then WAD_* environment variables (including any set by a .env file in the
// working directory). The merged result is checked against a CUE schema.
// Open writes the file and defaults back so that newly introduced fields
// show up in the file; environment overrides are never written.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appName  = "wad"
	fileName = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. WAD_WORKHOURS_PER_WEEK.
	EnvPrefix = "WAD"
)

// Config holds user settings. Durations are in hours.
type Config struct {
	WorkhoursPerWeek    float64 `mapstructure:"workhours_per_week" yaml:"workhours_per_week" json:"workhours_per_week"`
	DailyWorktimeLow    float64 `mapstructure:"daily_worktime_low" yaml:"daily_worktime_low" json:"daily_worktime_low"`
	DailyWorktimeMedium float64 `mapstructure:"daily_worktime_medium" yaml:"daily_worktime_medium" json:"daily_worktime_medium"`
	DailyWorktimeGood   float64 `mapstructure:"daily_worktime_good" yaml:"daily_worktime_good" json:"daily_worktime_good"`

	// DataDir overrides the absence store root. Empty means DefaultDataDir().
	DataDir string `mapstructure:"data_dir" yaml:"data_dir" json:"data_dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		WorkhoursPerWeek:    40,
		DailyWorktimeLow:    0,
		DailyWorktimeMedium: 4,
		DailyWorktimeGood:   8,
	}
}

// Dir returns the platform config directory for wad.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", &Error{Code: ErrCodeDirAccess, Err: err}
	}
	return filepath.Join(base, appName), nil
}

// FilePath returns the default config file path.
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// DefaultDataDir returns $XDG_DATA_HOME/wad, or ~/.local/share/wad.
func DefaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &Error{Code: ErrCodeDirAccess, Err: err}
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// ResolveDataDir returns c.DataDir if set, else DefaultDataDir().
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return DefaultDataDir()
}

// Open loads the config at path with environment overrides applied. The
// file is first saved back with defaults filled in, creating it when it is
// missing. An empty path means FilePath().
func Open(path string) (Config, error) {
	if path == "" {
		p, err := FilePath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	stored, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := stored.Save(path); err != nil {
		return Config{}, err
	}
	return Load(path)
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return &Error{Code: ErrCodeRead, Path: ".env", Err: err}
}

// Load reads path (optional) and the environment over the defaults, then
// validates the result. It never writes.
func Load(path string) (Config, error) {
	return load(path, true)
}

// LoadFile is Load without environment overrides: the settings a Save of
// the file should keep.
func LoadFile(path string) (Config, error) {
	return load(path, false)
}

func load(path string, env bool) (Config, error) {
	v := viper.New()
	def := Default()
	for _, f := range fields {
		v.SetDefault(f.key, f.get(def))
	}
	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.AutomaticEnv()
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &Error{Code: ErrCodeRead, Path: path, Err: err}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, &Error{Code: ErrCodeRead, Path: path, Err: err}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &Error{Code: ErrCodeSerialization, Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes c to path as YAML, creating the directory if needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Code: ErrCodeDirAccess, Path: filepath.Dir(path), Err: err}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return &Error{Code: ErrCodeSerialization, Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &Error{Code: ErrCodeWrite, Path: path, Err: err}
	}
	return nil
}

// KeyValue is one setting rendered as text.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

type field struct {
	key string
	get func(Config) any
	set func(*Config, string) error
}

var fields = []field{
	floatField("workhours_per_week", func(c *Config) *float64 { return &c.WorkhoursPerWeek }),
	floatField("daily_worktime_low", func(c *Config) *float64 { return &c.DailyWorktimeLow }),
	floatField("daily_worktime_medium", func(c *Config) *float64 { return &c.DailyWorktimeMedium }),
	floatField("daily_worktime_good", func(c *Config) *float64 { return &c.DailyWorktimeGood }),
	{
		key: "data_dir",
		get: func(c Config) any { return c.DataDir },
		set: func(c *Config, s string) error {
			c.DataDir = strings.TrimSpace(s)
			return nil
		},
	},
}

func floatField(key string, ptr func(*Config) *float64) field {
	return field{
		key: key,
		get: func(c Config) any { return *ptr(&c) },
		set: func(c *Config, s string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return &Error{Code: ErrCodeInvalidValue, Key: key, Value: s}
			}
			*ptr(c) = f
			return nil
		},
	}
}

func lookup(key string) (field, bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

// Keys returns the setting names in display order.
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// Get returns the value of key as text.
func (c Config) Get(key string) (string, error) {
	f, ok := lookup(key)
	if !ok {
		return "", &Error{Code: ErrCodeUnknownKey, Key: key}
	}
	return formatValue(f.get(c)), nil
}

// Set parses value according to the type of key and returns the updated
// config. The receiver is left unchanged when the new value is rejected.
func (c Config) Set(key, value string) (Config, error) {
	f, ok := lookup(key)
	if !ok {
		return c, &Error{Code: ErrCodeUnknownKey, Key: key}
	}
	next := c
	if err := f.set(&next, value); err != nil {
		return c, err
	}
	if err := next.Validate(); err != nil {
		return c, err
	}
	return next, nil
}

// List returns every setting in display order.
func (c Config) List() []KeyValue {
	out := make([]KeyValue, len(fields))
	for i, f := range fields {
		out[i] = KeyValue{Key: f.key, Value: formatValue(f.get(c))}
	}
	return out
}

// formatValue renders floats with at least one decimal, e.g. "40.0", "37.5".
func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
