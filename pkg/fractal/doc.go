// Package fractal generates the nested triangle/hexagon fractal.
//
// # Overview
//
// Two mutually recursive procedures drive a [pen.Pen]:
//
//   - [Generator.Triangle] traces an equilateral triangle, nests a smaller
//     triangle in each corner and one hexagon in the middle.
//   - [Generator.Hexagon] traces a regular hexagon, nests three smaller
//     hexagons and six triangles filling the corner gaps between them.
//
// Each nested shape is inset from its neighbours and from the outer outline by
// the generator's gap. Both procedures trace counterclockwise and leave the pen
// exactly where they found it (same position, same heading, pen up), so shapes
// compose without bookkeeping by the caller.
//
// # Termination
//
// Recursion stops in two independent ways:
//
//  1. The recursion budget runs out (recursions <= 1).
//  2. The next inset shape would have a non-positive size for the current gap.
//
// Either way the shape is drawn plain, without any nested shapes. Tight
// gap/size combinations therefore stop early even with a large budget, and a
// degenerate inset never produces an error.
//
// # Inset geometry
//
// The inset lengths come from 30/60/90 triangle offsets and are kept in their
// exact sqrt(3) form (8/sqrt(3), 1/sqrt(3), 5/sqrt(3), 2/sqrt(3),
// 4/sqrt(3)). Two offsets used around the triangle's central hexagon have no
// closed form and are kept as tuned decimals.
//
// # Usage
//
//	g := fractal.New(5)
//	p := pen.New(func(from, to pen.Point) { ... })
//	err := g.Hexagon(ctx, p, 250, 4)
//
// [Generator.Count] predicts how many strokes and shapes a call will emit
// without doing any geometry, which callers use for budgeting and reporting.
package fractal
