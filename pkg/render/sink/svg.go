package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"

	"github.com/matzehuels/trihex/pkg/glow"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	padding float64
	title   string
}

// background fills behind every drawing. Glow only reads on black.
var background = color.NRGBA{A: 0xff}

// WithPadding adds empty space around the drawing, in stroke units.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws strokes as an SVG document. Consecutive strokes of the same
// glow pass share one group carrying their width and colour.
func RenderSVG(strokes []glow.Stroke, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	frame := Fit(strokes, r.padding)
	w, h := frame.Width(), frame.Height()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(frame.MinX), num(-frame.MaxY), num(w), num(h), w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(r.title))
	}
	fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(frame.MinX), num(-frame.MaxY), num(w), num(h), hex(background))

	open := false
	layer := -1
	for _, s := range strokes {
		if !open || s.Layer != layer {
			if open {
				buf.WriteString("  </g>\n")
			}
			fmt.Fprintf(&buf, `  <g stroke="%s" stroke-width="%s" stroke-linecap="round" fill="none">`+"\n",
				hex(s.Color.NRGBA()), num(s.Width))
			open, layer = true, s.Layer
		}
		fmt.Fprintf(&buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(s.Start.X), num(-s.Start.Y), num(s.End.X), num(-s.End.Y))
	}
	if open {
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// num formats a coordinate with fixed precision so output is reproducible.
func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	if s == "-0.000" {
		return "0.000"
	}
	return s
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
