package sink

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/trihex/pkg/errors"
	"github.com/matzehuels/trihex/pkg/glow"
)

// DefaultPNGWidth is the PNG width used when none is configured.
const DefaultPNGWidth = 800

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	width       int
	height      int
	padding     float64
	supersample int
}

// WithPNGWidth sets the output width in pixels.
func WithPNGWidth(w int) PNGOption { return func(r *pngRenderer) { r.width = w } }

// WithPNGHeight sets the output height in pixels. When zero, the height
// follows the drawing's aspect ratio.
func WithPNGHeight(h int) PNGOption { return func(r *pngRenderer) { r.height = h } }

// WithPNGPadding adds empty space around the drawing, in stroke units.
func WithPNGPadding(p float64) PNGOption { return func(r *pngRenderer) { r.padding = p } }

// WithSupersample renders at n times the output size and scales down.
func WithSupersample(n int) PNGOption { return func(r *pngRenderer) { r.supersample = n } }

// RenderPNG rasterizes strokes with round caps. Strokes of one glow pass are
// filled as a single path so overlapping segments do not double up.
func RenderPNG(strokes []glow.Stroke, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{width: DefaultPNGWidth, supersample: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 || r.height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png size must be positive")
	}
	if r.supersample < 1 {
		r.supersample = 1
	}

	frame := Fit(strokes, r.padding)
	if r.height == 0 {
		r.height = r.width
		if frame.Width() > 0 {
			r.height = max(1, int(math.Round(float64(r.width)*frame.Height()/frame.Width())))
		}
	}

	w, h := r.width*r.supersample, r.height*r.supersample
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	scale := 1.0
	if frame.Width() > 0 && frame.Height() > 0 {
		scale = math.Min(float64(w)/frame.Width(), float64(h)/frame.Height())
	}
	// Centre the frame inside the canvas when aspect ratios differ.
	offX := (float64(w) - frame.Width()*scale) / 2
	offY := (float64(h) - frame.Height()*scale) / 2
	toPixel := func(x, y float64) fixed.Point26_6 {
		return fixed.Point26_6{
			X: fix(offX + (x-frame.MinX)*scale),
			Y: fix(offY + (frame.MaxY-y)*scale),
		}
	}

	scanner := rasterx.NewScannerGV(w, h, canvas, canvas.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)

	flush := func(s glow.Stroke) {
		scanner.SetColor(s.Color.NRGBA())
		dasher.Draw()
		dasher.Clear()
	}
	for i, s := range strokes {
		if i > 0 && strokes[i-1].Layer != s.Layer {
			flush(strokes[i-1])
		}
		if i == 0 || strokes[i-1].Layer != s.Layer {
			dasher.SetStroke(fix(s.Width*scale), fix(4), rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
		}
		dasher.Start(toPixel(s.Start.X, s.Start.Y))
		dasher.Line(toPixel(s.End.X, s.End.Y))
		dasher.Stop(false)
	}
	if len(strokes) > 0 {
		flush(strokes[len(strokes)-1])
	}

	var out image.Image = canvas
	if r.supersample > 1 {
		dst := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func fix(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
