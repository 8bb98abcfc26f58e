// Package pipeline provides the generate → render pipeline for trihex.
//
// The CLI and the HTTP server both run fractals through a [Runner], so both
// share one set of defaults, one validation path and one artifact cache.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Generate: trace every glow pass into an ordered stroke stream
//  2. Render: encode the strokes in each requested format (SVG, PNG, JSON)
//
// Artifacts are cached by a hash of the canonical configuration plus the
// output options. Generation is deterministic, so a hit is always exact.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  config.Defaults(),
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trihex/pkg/cache"
	"github.com/matzehuels/trihex/pkg/config"
	"github.com/matzehuels/trihex/pkg/errors"
	"github.com/matzehuels/trihex/pkg/fractal"
	"github.com/matzehuels/trihex/pkg/glow"
	"github.com/matzehuels/trihex/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultWidth is the default raster width in pixels.
const DefaultWidth = sink.DefaultPNGWidth

// MaxSize bounds raster dimensions.
const MaxSize = 8192

// MaxSupersample bounds the PNG supersampling factor.
const MaxSupersample = 4

// DefaultMaxStrokes is the stroke budget used when Options.MaxStrokes is
// zero. Each stroke costs roughly 70 bytes in memory before any encoding.
const DefaultMaxStrokes = 2_000_000

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Config  config.Session `json:"config"`
	Formats []string       `json:"formats,omitempty"`

	// Width and Height size raster output. Zero height keeps the drawing's
	// aspect ratio.
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	Padding float64 `json:"padding,omitempty"`

	// Supersample renders PNG output at n times its size and scales down.
	// Zero means 1.
	Supersample int `json:"supersample,omitempty"`

	// MaxStrokes rejects configurations that would draw more strokes.
	// Zero means DefaultMaxStrokes.
	MaxStrokes int `json:"max_strokes,omitempty"`

	// Refresh skips cache reads but still writes fresh results.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Strokes is the generated stroke stream. It is nil when every artifact
	// came from the cache.
	Strokes []glow.Stroke

	// ConfigHash identifies the configuration in cache keys and responses.
	ConfigHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StrokeCount  int
	Shapes       fractal.Count
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if err := errors.ValidateIntRange("width", o.Width, 1, MaxSize); err != nil {
		return err
	}
	if o.Height != 0 {
		if err := errors.ValidateIntRange("height", o.Height, 1, MaxSize); err != nil {
			return err
		}
	}
	if o.Padding < 0 {
		return errors.Invalid("padding", "must not be negative, got %g", o.Padding)
	}
	if o.Supersample == 0 {
		o.Supersample = 1
	}
	if err := errors.ValidateIntRange("supersample", o.Supersample, 1, MaxSupersample); err != nil {
		return err
	}
	if o.MaxStrokes == 0 {
		o.MaxStrokes = DefaultMaxStrokes
	}
	if o.MaxStrokes < 0 {
		return errors.Invalid("max_strokes", "must not be negative, got %d", o.MaxStrokes)
	}
	if err := o.checkBudget(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one format. Raster size
// only matters for PNG.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Padding: o.Padding}
	if format == FormatPNG {
		k.Width, k.Height = o.Width, o.Height
		if o.Supersample > 1 {
			k.Supersample = o.Supersample
		}
	}
	return k
}

// checkBudget rejects a configuration whose predicted stroke count exceeds
// MaxStrokes. Counting is linear in the layer count, so nothing is traced.
func (o *Options) checkBudget() error {
	r, err := o.Config.Renderer()
	if err != nil {
		return err
	}
	if n := r.Count().Strokes; n > o.MaxStrokes {
		return errors.New(errors.ErrCodeInvalidInput,
			"drawing needs %d strokes, limit is %d; lower layer_count or glow_layers", n, o.MaxStrokes)
	}
	return nil
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
