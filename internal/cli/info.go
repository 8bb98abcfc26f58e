package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trihex/pkg/config"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var cfg configFlags

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the resolved parameters and the size of the drawing",
		Long: `Show the resolved parameters and the size of the drawing without rendering.

Accepts the same parameter flags as render, so it can be used to check a
configuration before committing to a large render.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cfg.resolve(cmd)
			if err != nil {
				return err
			}
			return writeInfo(c.Out, s)
		},
	}

	cfg.register(cmd)
	return cmd
}

// writeInfo renders the parameter table and the derived values.
func writeInfo(w io.Writer, s config.Session) error {
	r, err := s.Renderer()
	if err != nil {
		return err
	}
	g := r.Config()
	per := r.Count()
	passes := g.Passes()

	rows := [][]string{
		{"hex size", s.Get(config.FieldHexSize)},
		{"gap size", s.Get(config.FieldGapSize)},
		{"layers", s.Get(config.FieldLayerCount)},
		{"glow layers", s.Get(config.FieldGlowLayers)},
		{"core width", s.Get(config.FieldCenterEdgeWidth)},
		{"glow width", s.Get(config.FieldGlowWidth)},
		{"colour", fmt.Sprintf("%s %s %s", s.Get(config.FieldColorR), s.Get(config.FieldColorG), s.Get(config.FieldColorB))},
		{"", ""},
		{"multiplier", strconv.FormatFloat(g.Multiplier(), 'f', 6, 64)},
		{"passes", strconv.Itoa(passes)},
		{"hexagons", strconv.Itoa(per.Hexagons / passes)},
		{"triangles", strconv.Itoa(per.Triangles / passes)},
		{"strokes/pass", strconv.Itoa(per.Strokes / passes)},
		{"strokes", strconv.Itoa(per.Strokes)},
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).PaddingRight(1)
	valStyle := lipgloss.NewStyle().Foreground(colorWhite).PaddingLeft(1)
	c := s.Color.NRGBA()
	swatch := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			if row >= 0 && row < len(rows) && rows[row][0] == "colour" {
				return valStyle.Foreground(swatch)
			}
			return valStyle
		})

	_, err = fmt.Fprintln(w, t.Render())
	return err
}
