// Package glow layers repeated fractal traces into a glow.
//
// The whole fractal is traced GlowLayers+1 times over itself. The first pass
// is the widest and darkest; every following pass is narrower by a constant
// factor and brighter, and the last pass is drawn at CenterEdgeWidth in the
// full colour. Seen together the passes read as a bright core line with a
// soft halo.
//
//	r, err := glow.NewRenderer(cfg, glow.Color{G: 1})
//	if err != nil {
//	    return err // invalid configuration, nothing was emitted
//	}
//	err = r.Render(ctx, glow.SinkFunc(func(s glow.Stroke) { ... }))
package glow

import (
	"context"
	"image/color"
	"math"

	"github.com/matzehuels/trihex/pkg/errors"
	"github.com/matzehuels/trihex/pkg/fractal"
	"github.com/matzehuels/trihex/pkg/pen"
)

// MaxLayerCount bounds the recursion depth. Output grows roughly eightfold per
// level.
const MaxLayerCount = 7

// MaxGlowLayers bounds the number of glow steps.
const MaxGlowLayers = 255

// Color is an RGB colour with components in [0, 1].
type Color struct {
	R float64 `json:"r" toml:"r"`
	G float64 `json:"g" toml:"g"`
	B float64 `json:"b" toml:"b"`
}

// Scale multiplies every component by f.
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

// NRGBA converts c to an opaque 8-bit colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xff}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Stroke is one emitted line segment.
type Stroke struct {
	Start pen.Point `json:"start"`
	End   pen.Point `json:"end"`
	Width float64   `json:"width"`
	Color Color     `json:"color"`
	Layer int       `json:"layer"` // glow pass index, 0 is the outermost halo
}

// Sink consumes strokes in emission order.
type Sink interface {
	Stroke(s Stroke)
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(Stroke)

// Stroke calls f(s).
func (f SinkFunc) Stroke(s Stroke) { f(s) }

// Config holds the geometric and glow parameters of a render.
type Config struct {
	HexSize         float64 `json:"hex_size"`
	GapSize         float64 `json:"gap_size"`
	LayerCount      int     `json:"layer_count"`
	GlowLayers      int     `json:"glow_layers"`
	CenterEdgeWidth float64 `json:"center_edge_width"`
	GlowWidth       float64 `json:"glow_width"`
}

// Validate reports the first invalid parameter as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if err := errors.ValidatePositive("hex_size", c.HexSize); err != nil {
		return err
	}
	if err := errors.ValidatePositive("gap_size", c.GapSize); err != nil {
		return err
	}
	if err := errors.ValidateIntRange("layer_count", c.LayerCount, 1, MaxLayerCount); err != nil {
		return err
	}
	if err := errors.ValidateIntRange("glow_layers", c.GlowLayers, 1, MaxGlowLayers); err != nil {
		return err
	}
	if err := errors.ValidatePositive("center_edge_width", c.CenterEdgeWidth); err != nil {
		return err
	}
	return errors.ValidatePositive("glow_width", c.GlowWidth)
}

// Multiplier returns the per-pass width ratio, chosen so that
// CenterEdgeWidth * Multiplier^GlowLayers == GlowWidth.
func (c Config) Multiplier() float64 {
	return math.Pow(c.GlowWidth/c.CenterEdgeWidth, 1.0/float64(c.GlowLayers))
}

// Width returns the stroke width of pass i.
func (c Config) Width(i int) float64 {
	return c.CenterEdgeWidth * math.Pow(c.Multiplier(), float64(c.GlowLayers-i))
}

// Brightness returns the colour scale of pass i, from 0 at the first pass to
// 1 at the last.
func (c Config) Brightness(i int) float64 {
	return float64(i) / float64(c.GlowLayers)
}

// Passes returns the number of full fractal traces, GlowLayers+1.
func (c Config) Passes() int { return c.GlowLayers + 1 }

// Shape returns the outermost shape of every pass.
func (c Config) Shape() fractal.ShapeSpec {
	return fractal.ShapeSpec{Kind: fractal.Hexagon, SideLength: c.HexSize, Recursions: c.LayerCount}
}

// InitialPose places the pen on the bottom vertex of a hexagon of side
// hexSize centred on the origin, facing along its first edge.
func InitialPose(hexSize float64) pen.Pose {
	return pen.Pose{Position: pen.Point{X: 0, Y: -hexSize}, Heading: 30}
}

// Renderer traces the glowing fractal for one configuration and colour.
type Renderer struct {
	cfg   Config
	color Color
	gen   *fractal.Generator
}

// NewRenderer validates cfg and col and returns a renderer for them.
func NewRenderer(cfg Config, col Color) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, ch := range []struct {
		name string
		v    float64
	}{{"color.r", col.R}, {"color.g", col.G}, {"color.b", col.B}} {
		if err := errors.ValidateUnit(ch.name, ch.v); err != nil {
			return nil, err
		}
	}
	return &Renderer{cfg: cfg, color: col, gen: fractal.New(cfg.GapSize)}, nil
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Count returns the total output of all passes.
func (r *Renderer) Count() fractal.Count {
	per := r.gen.Count(r.cfg.Shape())
	return fractal.Count{
		Strokes:   per.Strokes * r.cfg.Passes(),
		Triangles: per.Triangles * r.cfg.Passes(),
		Hexagons:  per.Hexagons * r.cfg.Passes(),
	}
}

// Render emits every pass to sink, outermost halo first. It stops at the first
// shape boundary after ctx is done and returns ctx.Err().
func (r *Renderer) Render(ctx context.Context, sink Sink) error {
	for i := range r.cfg.Passes() {
		if err := r.RenderPass(ctx, i, sink); err != nil {
			return err
		}
	}
	return nil
}

// RenderPass emits pass i alone on a fresh pen.
func (r *Renderer) RenderPass(ctx context.Context, i int, sink Sink) error {
	width := r.cfg.Width(i)
	col := r.color.Scale(r.cfg.Brightness(i))

	p := pen.New(func(from, to pen.Point) {
		sink.Stroke(Stroke{Start: from, End: to, Width: width, Color: col, Layer: i})
	})
	p.Reset(InitialPose(r.cfg.HexSize))
	return r.gen.Draw(ctx, p, r.cfg.Shape())
}
