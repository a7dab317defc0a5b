// Package config loads skyline's TOML configuration file.
//
// The file is optional. Its default location follows the XDG base directory
// layout: $XDG_CONFIG_HOME/skyline/config.toml, falling back to
// ~/.config/skyline/config.toml. Every field has a default, so a partial
// file only overrides what it names:
//
//	[log]
//	level = "debug"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":9000"
//	max_width = 200
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/skyline/pkg/cache"
	skyerrors "github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "skyline"

// Config is the complete configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Format string `toml:"format"`
}

// CacheConfig selects the render cache backend.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	Size     int      `toml:"size"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
}

// ServerConfig configures `skyline serve`.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	ReadTimeout    Duration `toml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout"`
	RequestTimeout Duration `toml:"request_timeout"`
	MaxBody        int64    `toml:"max_body"`
	MaxWidth       int      `toml:"max_width"`
	MaxHeight      int      `toml:"max_height"`
}

// Duration is a time.Duration written as a string ("5s", "24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Render: RenderConfig{Format: pipeline.DefaultFormat},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     Duration{pipeline.DefaultTTL},
			Size:    cache.DefaultMemorySize,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    Duration{5 * time.Second},
			WriteTimeout:   Duration{10 * time.Second},
			RequestTimeout: Duration{5 * time.Second},
			MaxBody:        64 << 10,
			MaxWidth:       pipeline.DefaultLimits.MaxWidth,
			MaxHeight:      pipeline.DefaultLimits.MaxHeight,
		},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the default file cache directory (~/.cache/skyline).
func CacheDir() (string, error) {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the file at path on top of Default and validates the result.
// An empty path means DefaultPath; a missing default file is not an error,
// but a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return Default(), nil
	case errors.Is(err, fs.ErrNotExist):
		return cfg, skyerrors.Wrap(skyerrors.ErrCodeFileNotFound, err, "config file %s", path)
	case err != nil:
		return cfg, skyerrors.Wrap(skyerrors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, skyerrors.New(skyerrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks enumerated fields and backend prerequisites.
func (c Config) Validate() error {
	if !validLevels[c.Log.Level] {
		return skyerrors.New(skyerrors.ErrCodeInvalidConfig, "log.level %q (want debug, info, warn or error)", c.Log.Level)
	}
	if err := pipeline.ValidateFormat(c.Render.Format); err != nil {
		return skyerrors.Wrap(skyerrors.ErrCodeInvalidConfig, err, "render.format")
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendMemory:
	case cache.BackendRedis:
		if err := skyerrors.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return err
		}
	default:
		return skyerrors.New(skyerrors.ErrCodeInvalidConfig, "cache.backend %q (want none, file, memory or redis)", c.Cache.Backend)
	}
	if c.Server.MaxBody <= 0 {
		return skyerrors.New(skyerrors.ErrCodeInvalidConfig, "server.max_body must be positive")
	}
	if c.Server.MaxWidth <= 0 || c.Server.MaxHeight <= 0 {
		return skyerrors.New(skyerrors.ErrCodeInvalidConfig, "server.max_width and server.max_height must be positive")
	}
	return nil
}

// CacheOptions converts the cache section for cache.New, resolving the
// default directory for the file backend.
func (c Config) CacheOptions() (cache.Options, error) {
	opts := cache.Options{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		Size:     c.Cache.Size,
		RedisURL: c.Cache.RedisURL,
	}
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return opts, err
		}
		opts.Dir = dir
	}
	return opts, nil
}

// Keyer returns the render keyer, scoped by cache.prefix when set.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}
