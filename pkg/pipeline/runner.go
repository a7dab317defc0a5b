package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/sceneio"
	"github.com/matzehuels/skyline/pkg/street"
)

// cacheKeyType labels render entries in cache hooks.
const cacheKeyType = "render"

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve many goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses cache.DefaultKeyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute parses, composes and encodes one street.
// Cache failures are logged and otherwise ignored; input errors are returned
// unchanged so callers can inspect their codes.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{Format: opts.Format}

	parseStart := time.Now()
	elements, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime = time.Since(parseStart)
	if err := opts.Limits.Check(elements); err != nil {
		return nil, err
	}
	result.Scene = street.NewScene(elements)

	key := r.Keyer.RenderKey(result.Scene.Descriptor(), opts.Format)
	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, key); ok {
			result.Output = data
			result.CacheHit = true
			r.Logger.Debug("render cache hit", "format", opts.Format, "bytes", len(data))
			return result, nil
		}
	}

	renderStart := time.Now()
	out, err := r.Render(ctx, result.Scene, opts.Format)
	if err != nil {
		return nil, err
	}
	result.Output = out
	result.Stats.RenderTime = time.Since(renderStart)

	r.cacheSet(ctx, key, out, opts.TTL)

	r.Logger.Debug("rendered street",
		"elements", len(elements),
		"width", result.Scene.Width(),
		"height", result.Scene.Height(),
		"format", opts.Format,
		"duration", result.Stats.ParseTime+result.Stats.RenderTime)
	return result, nil
}

// Parse returns opts.Elements when set, otherwise the parsed descriptor.
func (r *Runner) Parse(ctx context.Context, opts Options) ([]street.Element, error) {
	if opts.Elements != nil {
		return opts.Elements, nil
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Descriptor)
	start := time.Now()
	elements, err := street.Parse(opts.Descriptor)
	hooks.OnParseComplete(ctx, len(elements), time.Since(start), err)
	return elements, err
}

// Render encodes scene in format.
func (r *Runner) Render(ctx context.Context, scene *street.Scene, format string) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format, scene.Width(), scene.Height())
	start := time.Now()

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatText:
		err = sceneio.WriteText(&buf, scene)
	case FormatJSON:
		err = sceneio.WriteJSON(&buf, scene)
	default:
		err = ValidateFormat(format)
	}
	if err != nil {
		err = fmt.Errorf("render %s: %w", format, err)
	}

	hooks.OnRenderComplete(ctx, format, buf.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Runner) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, cacheKeyType, err)
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !ok {
		hooks.OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, cacheKeyType)
	return data, true
}

func (r *Runner) cacheSet(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, cacheKeyType, err)
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}
