package config

import (
	"strconv"
	"strings"

	"github.com/matzehuels/trihex/pkg/errors"
)

// KeepDefault is the answer that leaves a field unchanged.
const KeepDefault = "D"

// Field identifies one session parameter.
type Field string

// Session fields, in the order they are asked for interactively.
const (
	FieldHexSize         Field = "hex_size"
	FieldGapSize         Field = "gap_size"
	FieldLayerCount      Field = "layer_count"
	FieldCenterEdgeWidth Field = "center_edge_width"
	FieldGlowWidth       Field = "glow_width"
	FieldGlowLayers      Field = "glow_layers"
	FieldColorR          Field = "color.r"
	FieldColorG          Field = "color.g"
	FieldColorB          Field = "color.b"
)

// Prompt describes how a field is asked for.
type Prompt struct {
	Field    Field
	Question string
	Integer  bool
}

// Prompts lists every field with its question.
var Prompts = []Prompt{
	{FieldHexSize, "Length of the main hexagon's sides", false},
	{FieldGapSize, "Width of the gap between different shapes", false},
	{FieldLayerCount, "Amount of layers (integer) in the recursion", true},
	{FieldCenterEdgeWidth, "Width of the lines in the drawing", false},
	{FieldGlowWidth, "Radius of the glow", false},
	{FieldGlowLayers, "Amount of steps (integer) in the glow's gradient", true},
	{FieldColorR, "Red value of the colour (0 to 1)", false},
	{FieldColorG, "Green value of the colour (0 to 1)", false},
	{FieldColorB, "Blue value of the colour (0 to 1)", false},
}

// Set parses input into field. The answer [KeepDefault] leaves the field
// as is. Only syntax is checked here; ranges are checked by Validate.
func (s *Session) Set(field Field, input string) error {
	input = strings.TrimSpace(input)
	if input == KeepDefault {
		return nil
	}

	if field == FieldLayerCount || field == FieldGlowLayers {
		n, err := strconv.Atoi(input)
		if err != nil {
			return badInput(field, "must be an integer, got %q", input)
		}
		if field == FieldLayerCount {
			s.LayerCount = n
		} else {
			s.GlowLayers = n
		}
		return nil
	}

	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return badInput(field, "must be a number, got %q", input)
	}
	switch field {
	case FieldHexSize:
		s.HexSize = v
	case FieldGapSize:
		s.GapSize = v
	case FieldCenterEdgeWidth:
		s.CenterEdgeWidth = v
	case FieldGlowWidth:
		s.GlowWidth = v
	case FieldColorR:
		s.Color.R = v
	case FieldColorG:
		s.Color.G = v
	case FieldColorB:
		s.Color.B = v
	default:
		return badInput(field, "is not a known field")
	}
	return nil
}

// Get formats the current value of field.
func (s Session) Get(field Field) string {
	switch field {
	case FieldHexSize:
		return formatFloat(s.HexSize)
	case FieldGapSize:
		return formatFloat(s.GapSize)
	case FieldLayerCount:
		return strconv.Itoa(s.LayerCount)
	case FieldCenterEdgeWidth:
		return formatFloat(s.CenterEdgeWidth)
	case FieldGlowWidth:
		return formatFloat(s.GlowWidth)
	case FieldGlowLayers:
		return strconv.Itoa(s.GlowLayers)
	case FieldColorR:
		return formatFloat(s.Color.R)
	case FieldColorG:
		return formatFloat(s.Color.G)
	case FieldColorB:
		return formatFloat(s.Color.B)
	}
	return ""
}

// badInput reports input for field that could not be parsed at all.
func badInput(field Field, format string, args ...any) error {
	e := errors.New(errors.ErrCodeInvalidInput, format, args...)
	e.Field = string(field)
	return e
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
