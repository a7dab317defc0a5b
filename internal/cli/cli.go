// Package cli implements the skyline command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/config"
	"github.com/matzehuels/skyline/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file and applies its log level unless
// --verbose already asked for debug output.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	if c.verbose {
		c.SetLogLevel(LogDebug)
		return nil
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	c.SetLogLevel(level)
	return nil
}

// newRunner creates a pipeline runner backed by the configured cache. The
// returned cache must be closed by the caller.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, cache.Cache, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.NewRunner(store, c.Config.Keyer(), c.Logger), store, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts, err := c.Config.CacheOptions()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.New(ctx, opts)
}

// renderOptions fills the config defaults into a pipeline run.
func (c *CLI) renderOptions(opts pipeline.Options) pipeline.Options {
	if opts.Format == "" {
		opts.Format = c.Config.Render.Format
	}
	if opts.TTL == 0 {
		opts.TTL = c.Config.Cache.TTL.Duration
	}
	return opts
}
