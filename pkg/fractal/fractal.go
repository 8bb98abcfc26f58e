package fractal

import (
	"context"
	"fmt"

	"github.com/matzehuels/trihex/pkg/pen"
)

// Kind identifies a shape the generator can draw.
type Kind int

const (
	Triangle Kind = iota
	Hexagon
)

// String returns the lowercase shape name.
func (k Kind) String() string {
	switch k {
	case Triangle:
		return "triangle"
	case Hexagon:
		return "hexagon"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ShapeSpec is the input of a single generator call.
type ShapeSpec struct {
	Kind       Kind
	SideLength float64
	Recursions int
}

// Generator draws fractal shapes with a fixed gap between nested shapes.
// It holds no per-call state and may be shared; the [pen.Pen] passed to each
// call must not be.
type Generator struct {
	gap float64
}

// New returns a generator that separates nested shapes by gap.
func New(gap float64) *Generator {
	return &Generator{gap: gap}
}

// Gap returns the configured gap.
func (g *Generator) Gap() float64 { return g.gap }

// Draw dispatches spec to [Generator.Triangle] or [Generator.Hexagon].
func (g *Generator) Draw(ctx context.Context, p *pen.Pen, spec ShapeSpec) error {
	switch spec.Kind {
	case Triangle:
		return g.Triangle(ctx, p, spec.SideLength, spec.Recursions)
	case Hexagon:
		return g.Hexagon(ctx, p, spec.SideLength, spec.Recursions)
	default:
		return fmt.Errorf("unknown shape kind: %v", spec.Kind)
	}
}

// Triangle traces a fractal triangle of side length counterclockwise from the
// pen's pose, returning the pen to that pose. With recursions > 1 and a
// visible inset, each corner gets a nested triangle and the centre a nested
// hexagon, each one level down.
func (g *Generator) Triangle(ctx context.Context, p *pen.Pen, length float64, recursions int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	inner := innerTriangle(length, g.gap)
	hexSide := inner + triHexGrowth*g.gap
	if recursions <= 1 || hexSide <= 0 {
		polygon(p, 3, length)
		return nil
	}

	for side := range 3 {
		p.SetDown(true)
		p.Forward(length)
		p.SetDown(false)

		// Pivot into the corner just reached.
		p.Left(150)
		p.Forward(triPivot * g.gap)
		p.Right(30)

		if inner > 0 {
			if err := g.Triangle(ctx, p, inner, recursions-1); err != nil {
				return err
			}
		}

		if side == 2 {
			offset := inner + triHexOffset*g.gap
			p.Forward(offset)
			if err := g.Hexagon(ctx, p, hexSide, recursions-1); err != nil {
				return err
			}
			p.Backward(offset)
		}

		p.Left(30)
		p.Backward(triPivot * g.gap)
		p.Right(30)
	}
	return nil
}

// Hexagon traces a fractal hexagon of side length counterclockwise from the
// pen's pose, returning the pen to that pose. With recursions > 1 and a
// visible inset, every pair of outer sides gets one nested hexagon and two
// nested triangles, each one level down.
func (g *Generator) Hexagon(ctx context.Context, p *pen.Pen, length float64, recursions int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	inner := innerHexagon(length, g.gap)
	hexSide := inner + hexGrowth*g.gap
	if recursions <= 1 || hexSide <= 0 {
		polygon(p, 6, length)
		return nil
	}

	reach := 2*inner + hexTriOffset*g.gap
	across := inner + hexTriOffset*g.gap

	for range 3 {
		p.SetDown(true)
		p.Forward(length)
		p.Left(60)
		p.Forward(length)
		p.SetDown(false)

		p.Left(120)
		p.Forward(hexGrowth * g.gap)

		if inner > 0 {
			p.Right(120)
			p.Backward(reach)
			if err := g.Triangle(ctx, p, inner, recursions-1); err != nil {
				return err
			}
			p.Forward(reach)
			p.Left(60)
		} else {
			p.Right(60)
		}

		if err := g.Hexagon(ctx, p, hexSide, recursions-1); err != nil {
			return err
		}

		if inner > 0 {
			p.Forward(across)
			if err := g.Triangle(ctx, p, inner, recursions-1); err != nil {
				return err
			}
			p.Backward(across)
		}

		p.Left(60)
		p.Backward(hexGrowth * g.gap)
		p.Right(60)
	}
	return nil
}

// polygon traces a plain regular polygon with the given number of sides.
func polygon(p *pen.Pen, sides int, length float64) {
	turn := 360 / float64(sides)
	p.SetDown(true)
	for range sides {
		p.Forward(length)
		p.Left(turn)
	}
	p.SetDown(false)
}
