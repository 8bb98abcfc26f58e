package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/trihex/pkg/config"
	"github.com/matzehuels/trihex/pkg/pipeline"
)

func ExampleRunner_Execute() {
	s := config.Defaults()
	s.LayerCount = 2
	s.GlowLayers = 3

	runner := pipeline.NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), pipeline.Options{
		Config:  s,
		Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(result.Stats.StrokeCount, len(result.Artifacts), result.CacheHit)
	// Output: 168 2 false
}
