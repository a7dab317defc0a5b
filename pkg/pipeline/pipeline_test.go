package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skyline/pkg/cache"
	skyerrors "github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/street"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.DebugLevel})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"svg", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Descriptor: "b:3,2,#"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Format != FormatText {
		t.Errorf("Format = %q, want %q", opts.Format, FormatText)
	}
	if opts.TTL != DefaultTTL {
		t.Errorf("TTL = %v, want %v", opts.TTL, DefaultTTL)
	}
}

func TestExecuteText(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{Descriptor: "b:3,2,#"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	want := "+---+\n|   |\n|###|\n|###|\n+---+\n"
	if string(res.Output) != want {
		t.Errorf("Output = %q, want %q", res.Output, want)
	}
	if res.CacheHit {
		t.Error("null cache should never hit")
	}
	if res.Scene.Width() != 3 || res.Scene.Height() != 2 {
		t.Errorf("scene = %dx%d, want 3x2", res.Scene.Width(), res.Scene.Height())
	}
}

func TestExecuteJSON(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{Descriptor: "e:4,_X", Format: FormatJSON})
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Width  int      `json:"width"`
		Height int      `json:"height"`
		Lines  []string `json:"lines"`
	}
	if err := json.Unmarshal(res.Output, &doc); err != nil {
		t.Fatalf("json output: %v", err)
	}
	if doc.Width != 4 || doc.Height != 1 || len(doc.Lines) != 4 || doc.Lines[2] != "| X X|" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestExecuteElements(t *testing.T) {
	park, _ := street.NewPark(5, '*')
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{
		Descriptor: "this is ignored",
		Elements:   []street.Element{park},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Scene.Height() != street.ParkHeight {
		t.Errorf("Height = %d, want %d", res.Scene.Height(), street.ParkHeight)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	_, err := r.Execute(ctx, Options{Descriptor: "b:3,2,#", Format: "svg"})
	if !skyerrors.Is(err, skyerrors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v", err)
	}

	_, err = r.Execute(ctx, Options{Descriptor: "e:4,"})
	if !skyerrors.Is(err, skyerrors.ErrCodeEmptyPattern) {
		t.Errorf("bad descriptor error = %v", err)
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	mem, err := cache.NewMemoryCache(8)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(mem, nil, quietLogger())

	first, err := r.Execute(ctx, Options{Descriptor: "b:2,1,@ p:3,+"})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first run should miss")
	}

	// Same street, different spacing: canonical descriptor shares the entry.
	second, err := r.Execute(ctx, Options{Descriptor: "  b:2,1,@   p:3,+ "})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should hit")
	}
	if !bytes.Equal(first.Output, second.Output) {
		t.Error("cached output differs from rendered output")
	}

	refreshed, err := r.Execute(ctx, Options{Descriptor: "b:2,1,@ p:3,+", Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	asJSON, err := r.Execute(ctx, Options{Descriptor: "b:2,1,@ p:3,+", Format: FormatJSON})
	if err != nil {
		t.Fatal(err)
	}
	if asJSON.CacheHit {
		t.Error("a different format should miss")
	}
}

type brokenCache struct{ cache.NullCache }

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func TestExecuteSurvivesCacheFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.WarnLevel})
	r := NewRunner(brokenCache{}, nil, logger)

	res, err := r.Execute(context.Background(), Options{Descriptor: "b:3,2,#"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(res.Output) == 0 {
		t.Error("expected rendered output")
	}
	if !bytes.Contains(logs.Bytes(), []byte("cache read failed")) {
		t.Errorf("expected cache warning in logs, got %q", logs.String())
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	parses, renders int
	lastErr         error
}

func (h *recordingHooks) OnParseComplete(_ context.Context, _ int, _ time.Duration, err error) {
	h.parses++
	h.lastErr = err
}

func (h *recordingHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
	h.renders++
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestExecuteHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	ph := &recordingHooks{}
	ch := &countingCacheHooks{}
	observability.SetPipelineHooks(ph)
	observability.SetCacheHooks(ch)

	mem, _ := cache.NewMemoryCache(4)
	r := NewRunner(mem, nil, quietLogger())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := r.Execute(ctx, Options{Descriptor: "p:5,*"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := r.Execute(ctx, Options{Descriptor: "p:0,*"}); err == nil {
		t.Fatal("expected error")
	}

	if ph.parses != 3 || ph.renders != 1 {
		t.Errorf("parses, renders = %d, %d; want 3, 1", ph.parses, ph.renders)
	}
	if ph.lastErr == nil {
		t.Error("parse hook should see the failing parse")
	}
	if ch.misses != 1 || ch.hits != 1 || ch.sets != 1 {
		t.Errorf("cache hooks = %+v; want 1 miss, 1 hit, 1 set", *ch)
	}
}

func TestExecuteLimits(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()
	limits := Limits{MaxWidth: 10, MaxHeight: 5}

	tests := []struct {
		street  string
		wantErr bool
	}{
		{"b:10,5,#", false},
		{"p:5,* e:5,_", false},
		{"b:11,1,#", true},
		{"b:6,1,# b:5,1,#", true},
		{"b:1,6,#", true},
		{"b:9223372036854775807,1,# b:9223372036854775807,1,#", true},
	}
	for _, tt := range tests {
		_, err := r.Execute(ctx, Options{Descriptor: tt.street, Limits: limits})
		if (err != nil) != tt.wantErr {
			t.Errorf("Execute(%q) error = %v, wantErr %v", tt.street, err, tt.wantErr)
		}
		if err != nil && !skyerrors.Is(err, skyerrors.ErrCodeInvalidInput) {
			t.Errorf("Execute(%q) code = %s, want %s", tt.street, skyerrors.GetCode(err), skyerrors.ErrCodeInvalidInput)
		}
	}

	if _, err := r.Execute(ctx, Options{Descriptor: "b:2000,300,#"}); err != nil {
		t.Errorf("zero Limits should not bound the scene: %v", err)
	}
}
