// Package config holds the user-facing session parameters.
//
// A [Session] is the seven numeric parameters plus the fractal colour. It is
// built from [Defaults], optionally overlaid with a TOML file via [Load], and
// with individual answers via [Session.Set]. Nothing is generated until
// [Session.Validate] passes, so a bad value never produces partial output.
//
// Example file:
//
//	hex_size = 250
//	gap_size = 5
//	layer_count = 4
//	glow_layers = 30
//	center_edge_width = 0.3
//	glow_width = 60
//
//	[color]
//	r = 0.0
//	g = 1.0
//	b = 0.0
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/trihex/pkg/errors"
	"github.com/matzehuels/trihex/pkg/glow"
)

// Default parameter values.
const (
	DefaultHexSize         = 250.0
	DefaultGapSize         = 5.0
	DefaultLayerCount      = 4
	DefaultGlowLayers      = 30
	DefaultCenterEdgeWidth = 0.3
	DefaultGlowWidth       = 60.0
)

// DefaultColor is green.
var DefaultColor = glow.Color{R: 0, G: 1, B: 0}

// Session is the complete parameter set for one render.
type Session struct {
	HexSize         float64    `toml:"hex_size" json:"hex_size"`
	GapSize         float64    `toml:"gap_size" json:"gap_size"`
	LayerCount      int        `toml:"layer_count" json:"layer_count"`
	GlowLayers      int        `toml:"glow_layers" json:"glow_layers"`
	CenterEdgeWidth float64    `toml:"center_edge_width" json:"center_edge_width"`
	GlowWidth       float64    `toml:"glow_width" json:"glow_width"`
	Color           glow.Color `toml:"color" json:"color"`
}

// Defaults returns the session used when nothing is specified.
func Defaults() Session {
	return Session{
		HexSize:         DefaultHexSize,
		GapSize:         DefaultGapSize,
		LayerCount:      DefaultLayerCount,
		GlowLayers:      DefaultGlowLayers,
		CenterEdgeWidth: DefaultCenterEdgeWidth,
		GlowWidth:       DefaultGlowWidth,
		Color:           DefaultColor,
	}
}

// Load reads a TOML file on top of [Defaults]. Keys missing from the file
// keep their default; unknown keys are rejected.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data on top of [Defaults].
func Parse(data []byte) (Session, error) {
	s := Defaults()
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return Session{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Session{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return s, nil
}

// Validate checks every parameter. It never clamps.
func (s Session) Validate() error {
	if err := s.Glow().Validate(); err != nil {
		return err
	}
	if err := errors.ValidateUnit("color.r", s.Color.R); err != nil {
		return err
	}
	if err := errors.ValidateUnit("color.g", s.Color.G); err != nil {
		return err
	}
	return errors.ValidateUnit("color.b", s.Color.B)
}

// Glow returns the geometric part of the session.
func (s Session) Glow() glow.Config {
	return glow.Config{
		HexSize:         s.HexSize,
		GapSize:         s.GapSize,
		LayerCount:      s.LayerCount,
		GlowLayers:      s.GlowLayers,
		CenterEdgeWidth: s.CenterEdgeWidth,
		GlowWidth:       s.GlowWidth,
	}
}

// Renderer validates the session and returns its glow renderer.
func (s Session) Renderer() (*glow.Renderer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return glow.NewRenderer(s.Glow(), s.Color)
}

// Canonical returns a stable encoding of s, used for cache keys.
func (s Session) Canonical() []byte {
	data, _ := json.Marshal(s)
	return data
}

// Encode writes s as TOML.
func (s Session) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}
