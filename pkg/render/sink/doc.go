// Package sink provides display sinks for glow strokes.
//
// # Overview
//
// A "sink" consumes the ordered stroke stream produced by [glow.Renderer] and
// turns it into something viewable. This package provides:
//
//   - [Recorder]: buffers strokes for later replay
//   - SVG: vector output, one <line> per stroke
//   - PNG: raster output drawn with rasterx
//   - JSON: the raw stroke stream for external tools
//
// Strokes use Cartesian coordinates with Y up; every renderer flips Y and fits
// the drawing into a frame that includes the widest stroke's halo.
//
// # Usage
//
//	rec := sink.NewRecorder()
//	if err := renderer.Render(ctx, rec); err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(rec.Strokes(), sink.WithPadding(10))
//	png, err := sink.RenderPNG(rec.Strokes(), sink.WithPNGWidth(1200))
//
// All renderers draw strokes in order, so later (brighter, narrower) glow
// passes paint over earlier ones exactly as they were emitted.
//
// # Adding New Formats
//
//  1. Create a renderer function: func RenderFoo(strokes []glow.Stroke, opts ...FooOption) ([]byte, error)
//  2. Use [Fit] to map stroke coordinates into the output frame
//  3. Register the format in pkg/pipeline
//
// [glow.Renderer]: github.com/matzehuels/trihex/pkg/glow.Renderer
package sink
