// Package pkg provides the core libraries for trihex, a generator of glowing
// triangle and hexagon fractals.
//
// # Overview
//
// trihex traces a recursive pattern of nested hexagons and triangles with a
// turtle-style pen and draws it many times over, from a wide dim halo down to
// a thin bright core, which reads as neon glow. The pkg directory is
// organized into three areas:
//
//  1. Geometry ([pen], [fractal]) - the pen and the recursive shapes
//  2. Rendering ([glow], [render/sink]) - glow passes and output formats
//  3. Orchestration ([config], [pipeline], [cache]) - parameters, caching
//     and the generate → render flow
//
// # Architecture
//
// The typical data flow:
//
//	Session parameters (defaults, TOML, flags, prompt, query)
//	         ↓
//	    [config] package (validate; never clamps)
//	         ↓
//	    [glow] package (one pass per glow layer)
//	         ↓
//	    [fractal] package (hexagon ↔ triangle recursion over a [pen])
//	         ↓
//	    [render/sink] package (SVG, PNG, JSON)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/trihex/pkg/config"
//	    "github.com/matzehuels/trihex/pkg/render/sink"
//	)
//
//	s := config.Defaults()
//	s.LayerCount = 3
//
//	r, _ := s.Renderer()
//	rec := sink.NewRecorder(r.Count().Strokes)
//	r.Render(context.Background(), rec)
//
//	svg := sink.RenderSVG(rec.Strokes())
//
// # Main Packages
//
// [pen] - Position and heading with forward, back and turn moves. Every line
// drawn is reported to a callback.
//
// [fractal] - Hexagons containing a smaller hexagon and two triangles per
// edge pair, triangles containing three triangles and a hexagon. Every shape
// returns the pen to where it started. [fractal.Generator.Count] predicts
// the size of a drawing without tracing it.
//
// [glow] - Stroke widths that shrink geometrically and colours that brighten
// linearly from the outer halo to the core.
//
// [render/sink] - Stroke recorder and encoders for SVG, PNG (rasterized
// with rasterx) and JSON.
//
// [config] - The session parameter set, TOML loading and field-by-field
// parsing for interactive entry.
//
// [pipeline] - Validation, generation, rendering and artifact caching used
// by every command and the HTTP server.
//
// [cache] - File, Redis, MongoDB and null backends behind one interface.
//
// ## Supporting Packages
//
// [errors] - Error codes shared by validation, the CLI and the server.
//
// [observability] - Hooks for pipeline, cache and server events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/fractal/...            # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Set TRIHEX_TEST_REDIS or TRIHEX_TEST_MONGO to run the cache tests against
// live servers.
//
// [pen]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/pen
// [fractal]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/fractal
// [fractal.Generator.Count]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/fractal#Generator.Count
// [glow]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/glow
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/render/sink
// [config]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/trihex/pkg/buildinfo
package pkg
