package sink

import (
	"encoding/json"

	"github.com/matzehuels/trihex/pkg/errors"
	"github.com/matzehuels/trihex/pkg/glow"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	config any
	frame  bool
}

// WithJSONConfig embeds the session configuration that produced the strokes.
func WithJSONConfig(cfg any) JSONOption { return func(r *jsonRenderer) { r.config = cfg } }

// WithJSONFrame includes the fitted output frame.
func WithJSONFrame() JSONOption { return func(r *jsonRenderer) { r.frame = true } }

type jsonOutput struct {
	Config  any           `json:"config,omitempty"`
	Frame   *Rect         `json:"frame,omitempty"`
	Count   int           `json:"stroke_count"`
	Strokes []glow.Stroke `json:"strokes"`
}

// RenderJSON encodes the stroke stream in emission order.
func RenderJSON(strokes []glow.Stroke, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Config: r.config, Count: len(strokes), Strokes: strokes}
	if out.Strokes == nil {
		out.Strokes = []glow.Stroke{}
	}
	if r.frame {
		f := Fit(strokes, 0)
		out.Frame = &f
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return data, nil
}
