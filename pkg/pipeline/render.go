package pipeline

import (
	"fmt"

	"github.com/matzehuels/trihex/pkg/glow"
	"github.com/matzehuels/trihex/pkg/render/sink"
)

// Render encodes strokes in every format listed in opts.
func Render(strokes []glow.Stroke, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(strokes, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat encodes strokes in a single format.
func RenderFormat(strokes []glow.Stroke, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(strokes,
			sink.WithPadding(opts.Padding),
			sink.WithTitle(title(opts)),
		), nil
	case FormatPNG:
		return sink.RenderPNG(strokes,
			sink.WithPNGWidth(opts.Width),
			sink.WithPNGHeight(opts.Height),
			sink.WithPNGPadding(opts.Padding),
			sink.WithSupersample(opts.Supersample),
		)
	case FormatJSON:
		return sink.RenderJSON(strokes, sink.WithJSONConfig(opts.Config), sink.WithJSONFrame())
	default:
		return nil, ValidateFormat(format)
	}
}

func title(opts Options) string {
	c := opts.Config
	return fmt.Sprintf("trihex %g/%g, %d layers, %d glow passes", c.HexSize, c.GapSize, c.LayerCount, c.GlowLayers+1)
}
