package fractal

const sqrt3 = 1.73205080756887729352744634150587236694280525381038062805580697945193

// Triangle inset constants.
const (
	triInset      = 8 / sqrt3 // side consumed by the three corner gaps
	triCornerTrim = 1 / sqrt3
	triHexGrowth  = 0.87735 // inner hexagon side over inner triangle side, per gap
	triHexOffset  = 1.0547  // advance from a corner anchor to the hexagon anchor, per gap
	triPivot      = 2       // inward pivot distance, per gap
)

// Hexagon inset constants.
const (
	hexInset      = 5 / sqrt3
	hexCornerTrim = 1 / sqrt3
	hexGrowth     = 2 / sqrt3 // inner hexagon side over inner triangle side, per gap; also the pivot distance
	hexTriOffset  = 4 / sqrt3
)

// innerTriangle returns the side of the triangles nested in a triangle of the
// given side.
func innerTriangle(length, gap float64) float64 {
	return ((length - triInset*gap) / 3) - triCornerTrim*gap
}

// innerHexagon returns the side of the triangles nested in a hexagon of the
// given side.
func innerHexagon(length, gap float64) float64 {
	return ((length - hexInset*gap) / 2) - hexCornerTrim*gap
}
