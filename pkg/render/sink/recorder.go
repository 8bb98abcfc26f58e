package sink

import (
	"math"

	"github.com/matzehuels/trihex/pkg/glow"
	"github.com/matzehuels/trihex/pkg/pen"
)

// Recorder is a [glow.Sink] that keeps every stroke in emission order.
type Recorder struct {
	strokes []glow.Stroke
}

// NewRecorder returns an empty recorder. capacity is a size hint.
func NewRecorder(capacity int) *Recorder {
	return &Recorder{strokes: make([]glow.Stroke, 0, max(capacity, 0))}
}

// Stroke records s.
func (r *Recorder) Stroke(s glow.Stroke) { r.strokes = append(r.strokes, s) }

// Strokes returns the recorded strokes. The slice is shared, not copied.
func (r *Recorder) Strokes() []glow.Stroke { return r.strokes }

// Len returns the number of recorded strokes.
func (r *Recorder) Len() int { return len(r.strokes) }

// Replay sends every recorded stroke to dst in order.
func (r *Recorder) Replay(dst glow.Sink) {
	for _, s := range r.strokes {
		dst.Stroke(s)
	}
}

var _ glow.Sink = (*Recorder)(nil)

// Rect is an axis-aligned rectangle in stroke coordinates.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the rectangle covering every stroke endpoint and the widest
// stroke width. An empty input yields a zero Rect.
func Bounds(strokes []glow.Stroke) (Rect, float64) {
	if len(strokes) == 0 {
		return Rect{}, 0
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	widest := 0.0
	for _, s := range strokes {
		for _, p := range [2]pen.Point{s.Start, s.End} {
			r.MinX = math.Min(r.MinX, p.X)
			r.MinY = math.Min(r.MinY, p.Y)
			r.MaxX = math.Max(r.MaxX, p.X)
			r.MaxY = math.Max(r.MaxY, p.Y)
		}
		widest = math.Max(widest, s.Width)
	}
	return r, widest
}

// Fit returns the output frame for strokes: their bounds grown by half the
// widest stroke (the round caps) plus padding on every side.
func Fit(strokes []glow.Stroke, padding float64) Rect {
	r, widest := Bounds(strokes)
	m := widest/2 + padding
	return Rect{MinX: r.MinX - m, MinY: r.MinY - m, MaxX: r.MaxX + m, MaxY: r.MaxY + m}
}
