// Package pen implements a turtle-style drawing cursor.
//
// A [Pen] tracks a position, a heading in degrees (counterclockwise positive,
// 0 pointing along +X) and whether it is down. Moving forward with the pen
// down reports the traversed segment to the pen's [SegmentFunc]; moving with
// the pen up only relocates it. Coordinates are Cartesian with Y pointing up.
//
// A Pen is a plain value owned by whoever drives it. It holds no reference to
// any display, so independent generation passes each use their own Pen.
//
//	p := pen.New(func(from, to pen.Point) { fmt.Println(from, to) })
//	p.SetDown(true)
//	p.Forward(10)
//	p.Left(90)
//	p.Forward(10)
package pen

import "math"

// Point is a position in the drawing plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Len returns the distance of p from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Pose is a position together with a heading.
type Pose struct {
	Position Point
	Heading  float64
}

// SegmentFunc receives every segment traced while the pen is down.
type SegmentFunc func(from, to Point)

// Pen is a stateful 2D drawing cursor.
type Pen struct {
	pos     Point
	heading float64
	down    bool
	emit    SegmentFunc
}

// New returns a pen at the origin facing +X with the pen up.
// A nil emit discards segments.
func New(emit SegmentFunc) *Pen {
	return &Pen{emit: emit}
}

// Position returns the current position.
func (p *Pen) Position() Point { return p.pos }

// Heading returns the current heading in degrees, normalized to [0, 360).
func (p *Pen) Heading() float64 { return p.heading }

// Down reports whether the pen is down.
func (p *Pen) Down() bool { return p.down }

// Pose returns the current position and heading.
func (p *Pen) Pose() Pose { return Pose{Position: p.pos, Heading: p.heading} }

// Reset moves the pen to pose without drawing and lifts it.
func (p *Pen) Reset(pose Pose) {
	p.pos = pose.Position
	p.heading = normalize(pose.Heading)
	p.down = false
}

// SetDown lowers (true) or lifts (false) the pen.
func (p *Pen) SetDown(down bool) { p.down = down }

// Forward advances the pen by length along its heading. Negative lengths move
// backwards. With the pen down the traversed segment is emitted.
func (p *Pen) Forward(length float64) {
	rad := p.heading * math.Pi / 180
	next := Point{
		X: p.pos.X + length*math.Cos(rad),
		Y: p.pos.Y + length*math.Sin(rad),
	}
	if p.down && p.emit != nil {
		p.emit(p.pos, next)
	}
	p.pos = next
}

// Backward moves the pen by length against its heading.
func (p *Pen) Backward(length float64) { p.Forward(-length) }

// Turn rotates the heading by deg degrees, counterclockwise positive.
func (p *Pen) Turn(deg float64) { p.heading = normalize(p.heading + deg) }

// Left turns counterclockwise by deg degrees.
func (p *Pen) Left(deg float64) { p.Turn(deg) }

// Right turns clockwise by deg degrees.
func (p *Pen) Right(deg float64) { p.Turn(-deg) }

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
