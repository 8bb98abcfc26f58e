package fractal_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/trihex/pkg/fractal"
	"github.com/matzehuels/trihex/pkg/pen"
)

func ExampleGenerator_Hexagon() {
	strokes := 0
	p := pen.New(func(from, to pen.Point) { strokes++ })

	g := fractal.New(5)
	if err := g.Hexagon(context.Background(), p, 250, 2); err != nil {
		panic(err)
	}
	fmt.Println(strokes)
	// Output: 42
}

func ExampleGenerator_Count() {
	g := fractal.New(5)
	c := g.Count(fractal.ShapeSpec{Kind: fractal.Hexagon, SideLength: 250, Recursions: 4})
	fmt.Println(c.Strokes, c.Hexagons, c.Triangles)
	// Output: 1158 100 186
}
