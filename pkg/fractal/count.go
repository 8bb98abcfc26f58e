package fractal

// Count is the number of strokes and shapes a generator call emits.
type Count struct {
	Strokes   int
	Triangles int
	Hexagons  int
}

// Shapes returns the total number of shapes.
func (c Count) Shapes() int { return c.Triangles + c.Hexagons }

func (c Count) add(o Count) Count {
	return Count{c.Strokes + o.Strokes, c.Triangles + o.Triangles, c.Hexagons + o.Hexagons}
}

func (c Count) times(n int) Count {
	return Count{c.Strokes * n, c.Triangles * n, c.Hexagons * n}
}

// Count predicts the output of drawing spec without tracing any geometry.
// Sibling shapes at a level are identical, so this runs in time linear in the
// recursion depth.
func (g *Generator) Count(spec ShapeSpec) Count {
	switch spec.Kind {
	case Triangle:
		return g.countTriangle(spec.SideLength, spec.Recursions)
	case Hexagon:
		return g.countHexagon(spec.SideLength, spec.Recursions)
	default:
		return Count{}
	}
}

func (g *Generator) countTriangle(length float64, recursions int) Count {
	inner := innerTriangle(length, g.gap)
	hexSide := inner + triHexGrowth*g.gap
	c := Count{Strokes: 3, Triangles: 1}
	if recursions <= 1 || hexSide <= 0 {
		return c
	}
	if inner > 0 {
		c = c.add(g.countTriangle(inner, recursions-1).times(3))
	}
	return c.add(g.countHexagon(hexSide, recursions-1))
}

func (g *Generator) countHexagon(length float64, recursions int) Count {
	inner := innerHexagon(length, g.gap)
	hexSide := inner + hexGrowth*g.gap
	c := Count{Strokes: 6, Hexagons: 1}
	if recursions <= 1 || hexSide <= 0 {
		return c
	}
	per := g.countHexagon(hexSide, recursions-1)
	if inner > 0 {
		per = per.add(g.countTriangle(inner, recursions-1).times(2))
	}
	return c.add(per.times(3))
}
