package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("b:3,2,#"))
	h2 := Hash([]byte("b:3,2,#"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("b:3,2,@")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()

	text := k.RenderKey("b:3,2,#", "text")
	if text != k.RenderKey("b:3,2,#", "text") {
		t.Error("RenderKey should be deterministic")
	}
	if text == k.RenderKey("b:3,2,#", "json") {
		t.Error("format should change the key")
	}
	// Joined parts must not collide across the boundary.
	if k.RenderKey("ab", "c") == k.RenderKey("a", "bc") {
		t.Error("RenderKey parts collide")
	}

	scoped := NewScopedKeyer(nil, "team-a:")
	if got := scoped.RenderKey("b:3,2,#", "text"); got != "team-a:"+text {
		t.Errorf("ScopedKeyer.RenderKey = %q, want prefix + %q", got, text)
	}
}

// exercise runs the shared Cache contract against c.
func exercise(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	want := []byte("+---+\n|###|\n+---+\n")
	if err := c.Set(ctx, "k", want, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = hit %v, err %v; want hit", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get(k) = %q, want %q", got, want)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(never-set) error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	exercise(t, c)
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("corrupt entry: hit %v, err %v; want silent miss", hit, err)
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestMemoryCache(t *testing.T) {
	c, err := NewMemoryCache(16)
	if err != nil {
		t.Fatal(err)
	}
	exercise(t, c)
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(2)
	if err != nil {
		t.Fatal(err)
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_, _, _ = c.Get(ctx, "a") // a is now most recent
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("least recently used entry should be evicted")
	}
	if _, hit, _ := c.Get(ctx, "a"); !hit {
		t.Error("recently used entry should survive")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestMemoryCacheCopies(t *testing.T) {
	ctx := context.Background()
	c, _ := NewMemoryCache(4)

	data := []byte("abc")
	_ = c.Set(ctx, "k", data, 0)
	data[0] = 'X'

	got, _, _ := c.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("Get = %q, caller mutation leaked into cache", got)
	}
}

func TestBackoff(t *testing.T) {
	ctx := context.Background()
	fast := Backoff{Attempts: 3, Delay: time.Millisecond}

	t.Run("retries transient errors", func(t *testing.T) {
		calls := 0
		err := fast.Do(ctx, func() error {
			calls++
			if calls < 3 {
				return Retryable(errors.New("conn reset"))
			}
			return nil
		})
		if err != nil || calls != 3 {
			t.Errorf("err = %v, calls = %d; want nil, 3", err, calls)
		}
	})

	t.Run("stops on permanent errors", func(t *testing.T) {
		calls := 0
		perm := errors.New("WRONGTYPE")
		err := fast.Do(ctx, func() error {
			calls++
			return perm
		})
		if !errors.Is(err, perm) || calls != 1 {
			t.Errorf("err = %v, calls = %d; want %v, 1", err, calls, perm)
		}
	})

	t.Run("gives up after attempts", func(t *testing.T) {
		calls := 0
		err := fast.Do(ctx, func() error {
			calls++
			return Retryable(errors.New("timeout"))
		})
		if err == nil || calls != 3 || !IsRetryable(err) {
			t.Errorf("err = %v, calls = %d; want retryable error after 3 calls", err, calls)
		}
	})

	t.Run("honours cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		slow := Backoff{Attempts: 5, Delay: time.Hour}
		err := slow.Do(cctx, func() error { return Retryable(errors.New("x")) })
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestRetryableNil(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"default", Options{}, false},
		{"none", Options{Backend: BackendNone}, false},
		{"file", Options{Backend: BackendFile, Dir: t.TempDir()}, false},
		{"file without dir", Options{Backend: BackendFile}, true},
		{"memory", Options{Backend: BackendMemory, Size: 8}, false},
		{"redis bad url", Options{Backend: BackendRedis, RedisURL: "http://x"}, true},
		{"unknown", Options{Backend: "s3"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%+v) error = %v, wantErr %v", tt.opts, err, tt.wantErr)
			}
			if c != nil {
				c.Close()
			}
		})
	}
}
