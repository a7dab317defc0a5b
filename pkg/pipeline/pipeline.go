// Package pipeline runs the parse → compose → encode pipeline shared by the
// CLI and the render service.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Descriptor: "b:3,2,# p:5,*",
//	    Format:     pipeline.FormatText,
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Output)
//
// Results are cached by canonical descriptor and format, so "b:3,2,#" and
// "  b:3,2,#  " share one entry.
package pipeline

import (
	"time"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/street"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultFormat is used when Options.Format is empty.
const DefaultFormat = FormatText

// DefaultTTL is how long rendered scenes stay cached.
const DefaultTTL = 24 * time.Hour

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
}

// ContentTypes maps each format to its HTTP content type.
var ContentTypes = map[string]string{
	FormatText: "text/plain; charset=utf-8",
	FormatJSON: "application/json",
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'text' or 'json')", format)
	}
	return nil
}

// Options configures one pipeline run.
type Options struct {
	// Descriptor is the street line to parse. Ignored when Elements is set.
	Descriptor string `json:"street"`
	// Elements are already-parsed elements, e.g. from a scene file.
	Elements []street.Element `json:"-"`

	Format  string        `json:"format,omitempty"`
	Refresh bool          `json:"refresh,omitempty"` // bypass cache reads
	TTL     time.Duration `json:"-"`

	// Limits bounds the scene size. The zero value allows any size.
	Limits Limits `json:"-"`
}

// Limits caps the columns and levels of a scene. A field <= 0 is unbounded.
type Limits struct {
	MaxWidth  int
	MaxHeight int
}

// DefaultLimits is what the render service allows unless configured.
var DefaultLimits = Limits{MaxWidth: 1024, MaxHeight: 256}

// Check rejects elements whose scene would exceed the limits. Widths are
// compared one at a time so that huge values cannot overflow the sum.
func (l Limits) Check(elements []street.Element) error {
	if l.MaxWidth > 0 {
		total := 0
		for _, e := range elements {
			if e.Width > l.MaxWidth-total {
				return errors.New(errors.ErrCodeInvalidInput, "street is wider than %d columns", l.MaxWidth)
			}
			total += e.Width
		}
	}
	if l.MaxHeight > 0 {
		if h := street.MaxHeight(elements); h > l.MaxHeight {
			return errors.New(errors.ErrCodeInvalidInput, "street is %d levels tall, limit is %d", h, l.MaxHeight)
		}
	}
	return nil
}

// ValidateAndSetDefaults fills in defaults and validates the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	return ValidateFormat(o.Format)
}

// Result is the outcome of Execute.
type Result struct {
	Scene    *street.Scene
	Format   string
	Output   []byte
	CacheHit bool
	Stats    Stats
}

// Stats records how long each stage took.
type Stats struct {
	ParseTime  time.Duration
	RenderTime time.Duration
}
