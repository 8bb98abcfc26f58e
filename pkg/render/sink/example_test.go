package sink_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/trihex/pkg/glow"
	"github.com/matzehuels/trihex/pkg/render/sink"
)

func ExampleRenderSVG() {
	r, _ := glow.NewRenderer(glow.Config{
		HexSize:         100,
		GapSize:         5,
		LayerCount:      1,
		GlowLayers:      2,
		CenterEdgeWidth: 0.3,
		GlowWidth:       30,
	}, glow.Color{G: 1})

	rec := sink.NewRecorder(r.Count().Strokes)
	if err := r.Render(context.Background(), rec); err != nil {
		panic(err)
	}

	svg := sink.RenderSVG(rec.Strokes(), sink.WithTitle("hexagon"))
	fmt.Println(bytes.Count(svg, []byte("<line")), bytes.Count(svg, []byte("<g ")))
	// Output: 18 3
}
