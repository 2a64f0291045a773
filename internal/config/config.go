// Package config loads editor settings from flags, BOXLINE_* environment
// variables, an optional YAML file and built-in defaults, in that order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wesen/boxline/internal/persist"
	"github.com/wesen/boxline/pkg/viewport"
)

// EnvPrefix prefixes every environment override, e.g. BOXLINE_STORE_PATH.
const EnvPrefix = "BOXLINE"

// Store backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

type Store struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

type Zoom struct {
	MinScale    float64 `mapstructure:"min_scale"`
	MaxScale    float64 `mapstructure:"max_scale"`
	Sensitivity float64 `mapstructure:"sensitivity"`
	WheelStep   float64 `mapstructure:"wheel_step"`
}

// ZoomConfig returns the scroll-to-scale mapping part of z.
func (z Zoom) ZoomConfig() viewport.ZoomConfig {
	return viewport.ZoomConfig{MinScale: z.MinScale, MaxScale: z.MaxScale, Sensitivity: z.Sensitivity}
}

type Editor struct {
	Placeholder string `mapstructure:"placeholder"`
}

type UI struct {
	FrameInterval time.Duration `mapstructure:"frame_interval"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Config is the complete settings tree.
type Config struct {
	Store  Store  `mapstructure:"store"`
	Zoom   Zoom   `mapstructure:"zoom"`
	Editor Editor `mapstructure:"editor"`
	UI     UI     `mapstructure:"ui"`
	Log    Log    `mapstructure:"log"`
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	zoom := viewport.DefaultZoomConfig()
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.path", defaultStorePath())
	v.SetDefault("store.key", persist.DefaultKey)
	v.SetDefault("zoom.min_scale", zoom.MinScale)
	v.SetDefault("zoom.max_scale", zoom.MaxScale)
	v.SetDefault("zoom.sensitivity", zoom.Sensitivity)
	v.SetDefault("zoom.wheel_step", 40.0)
	v.SetDefault("editor.placeholder", "Stuff and things")
	v.SetDefault("ui.frame_interval", 16*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "diagram.json"
	}
	return filepath.Join(home, ".boxline", "diagram.json")
}

// DefaultFile is the config file read when --config is not given.
func DefaultFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".boxline.yaml")
}

// Flags registers the command-line overrides on fs.
func Flags(fs *pflag.FlagSet) {
	fs.String("store", "", "store backend: file, badger or memory")
	fs.String("store-path", "", "diagram file, or badger directory")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-file", "", "write logs to this file")
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"store":      "store.backend",
	"store-path": "store.path",
	"log-level":  "log.level",
	"log-file":   "log.file",
}

// New returns a viper instance with defaults, environment overrides and
// any flags from fs bound.
func New(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs == nil {
		return v, nil
	}
	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	return v, nil
}

// Load reads file into v, when given, and decodes and validates the
// result. A missing default file is not an error; a missing explicit file
// is.
func Load(v *viper.Viper, file string, explicit bool) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
				return Config{}, fmt.Errorf("read config %s: %w", file, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the editor cannot run with.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendBadger:
		if c.Store.Path == "" {
			return fmt.Errorf("config: store.path is required for the %s backend", c.Store.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config: unknown store.backend %q", c.Store.Backend)
	}
	if err := c.Zoom.ZoomConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !viewport.Positive(c.Zoom.WheelStep) {
		return fmt.Errorf("config: zoom.wheel_step must be positive, got %v", c.Zoom.WheelStep)
	}
	if c.UI.FrameInterval <= 0 {
		return fmt.Errorf("config: ui.frame_interval must be positive, got %v", c.UI.FrameInterval)
	}
	return nil
}
