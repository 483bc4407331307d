package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"photo-wall/internal/logger"
	"photo-wall/internal/models"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	AppDirName = "photo-wall"
	EnvPrefix  = "PHOTOWALL"
)

// Config holds runtime settings for the wall and its window.
// Values come from defaults, an optional config file and PHOTOWALL_* variables.
type Config struct {
	StateFile      string        `mapstructure:"state_file"`
	LogLevel       string        `mapstructure:"log_level"`
	JSONLogs       bool          `mapstructure:"json_logs"`
	Debug          bool          `mapstructure:"debug"`
	DeleteDebounce time.Duration `mapstructure:"delete_debounce"`
	CacheSize      int           `mapstructure:"cache_size"`

	Layout LayoutConfig `mapstructure:"layout"`
	Frame  FrameConfig  `mapstructure:"frame"`
	Window WindowConfig `mapstructure:"window"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

type LayoutConfig struct {
	Margin     float64 `mapstructure:"margin"`
	Padding    float64 `mapstructure:"padding"`
	WrapFactor float64 `mapstructure:"wrap_factor"`
}

type FrameConfig struct {
	PixelsPerUnit float64 `mapstructure:"pixels_per_unit"`
	BorderWidth   int     `mapstructure:"border_width"`
	DefaultSize   string  `mapstructure:"default_size"`
}

type WindowConfig struct {
	Width      float32 `mapstructure:"width"`
	Height     float32 `mapstructure:"height"`
	FullScreen bool    `mapstructure:"full_screen"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	layout := models.DefaultLayoutOptions()
	return &Config{
		StateFile:      "wall_state.json",
		LogLevel:       "info",
		DeleteDebounce: models.DefaultDebounceWindow,
		CacheSize:      128,
		Layout: LayoutConfig{
			Margin:     layout.Margin,
			Padding:    layout.Padding,
			WrapFactor: layout.WrapFactor,
		},
		Frame: FrameConfig{
			PixelsPerUnit: 10,
			BorderWidth:   10,
			DefaultSize:   "S",
		},
		Window: WindowConfig{
			Width:  1200,
			Height: 800,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("state_file", d.StateFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("json_logs", d.JSONLogs)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("delete_debounce", d.DeleteDebounce)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("layout.margin", d.Layout.Margin)
	v.SetDefault("layout.padding", d.Layout.Padding)
	v.SetDefault("layout.wrap_factor", d.Layout.WrapFactor)
	v.SetDefault("frame.pixels_per_unit", d.Frame.PixelsPerUnit)
	v.SetDefault("frame.border_width", d.Frame.BorderWidth)
	v.SetDefault("frame.default_size", d.Frame.DefaultSize)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.full_screen", d.Window.FullScreen)
}

// DefaultDir is where a config file is looked up when none is named
func DefaultDir() string {
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// Load reads configuration. An explicit path (or PHOTOWALL_CONFIG) must exist;
// otherwise config.{yaml,toml,json} under DefaultDir is optional.
func Load(path string) (*Config, error) {
	return load(path, DefaultDir())
}

func load(path, searchDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// plain LOG_LEVEL and DEBUG are honoured as fallbacks
	if err := v.BindEnv("log_level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind log level: %w", err)
	}
	if err := v.BindEnv("debug", EnvPrefix+"_DEBUG", "DEBUG"); err != nil {
		return nil, fmt.Errorf("failed to bind debug flag: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(searchDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate clamps numeric settings to usable ranges and rejects an unknown
// default size.
func (c *Config) Validate() error {
	d := DefaultConfig()

	if c.StateFile == "" {
		c.StateFile = d.StateFile
	}
	if c.DeleteDebounce < 0 {
		c.DeleteDebounce = d.DeleteDebounce
	}
	if c.CacheSize <= 0 {
		c.CacheSize = d.CacheSize
	}
	if c.Layout.Margin < 0 {
		c.Layout.Margin = d.Layout.Margin
	}
	if c.Layout.Padding < 0 {
		c.Layout.Padding = d.Layout.Padding
	}
	if c.Layout.WrapFactor < 0 {
		c.Layout.WrapFactor = d.Layout.WrapFactor
	}
	if c.Frame.PixelsPerUnit <= 0 {
		c.Frame.PixelsPerUnit = d.Frame.PixelsPerUnit
	}
	if c.Frame.BorderWidth < 0 {
		c.Frame.BorderWidth = 0
	}
	if c.Window.Width < 400 {
		c.Window.Width = 400
	}
	if c.Window.Height < 300 {
		c.Window.Height = 300
	}

	if _, err := models.ParseSizeClass(c.Frame.DefaultSize); err != nil {
		return fmt.Errorf("invalid frame.default_size: %w", err)
	}
	return nil
}

// Level resolves the effective log level; Debug wins over LogLevel
func (c *Config) Level() logger.LogLevel {
	if c.Debug {
		return logger.DebugLevel
	}
	return logger.ParseLevel(c.LogLevel)
}

func (c *Config) LayoutOptions() models.LayoutOptions {
	return models.LayoutOptions{
		Margin:     c.Layout.Margin,
		Padding:    c.Layout.Padding,
		WrapFactor: c.Layout.WrapFactor,
	}
}

// DefaultSize returns the size class new frames start with
func (c *Config) DefaultSize() models.SizeClass {
	size, err := models.ParseSizeClass(c.Frame.DefaultSize)
	if err != nil {
		return models.SizeSmall
	}
	return size
}
