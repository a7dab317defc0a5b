package cache

import (
	"context"

	"github.com/matzehuels/skyline/pkg/errors"
)

// Backend names accepted by [New].
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend  string
	Dir      string // file backend root
	Size     int    // memory backend entry limit
	RedisURL string // redis backend connection URL
}

// New builds the cache described by opts. An empty backend means none.
func New(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache needs a directory")
		}
		return NewFileCache(opts.Dir)
	case BackendMemory:
		return NewMemoryCache(opts.Size)
	case BackendRedis:
		return NewRedisCache(ctx, opts.RedisURL)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want none, file, memory or redis)", opts.Backend)
}
