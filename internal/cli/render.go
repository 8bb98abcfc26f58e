package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trihex/pkg/config"
	"github.com/matzehuels/trihex/pkg/pipeline"
)

// outputOpts holds the flags shared by every command that writes files.
type outputOpts struct {
	output  string  // output file (single format) or base path (multiple)
	formats string  // comma-separated formats
	width   int     // raster width in pixels
	height  int     // raster height in pixels, 0 keeps the aspect ratio
	padding float64 // margin around the drawing, in drawing units
	scale   int     // PNG supersampling factor
	budget  int     // maximum strokes to draw
	noCache bool
	refresh bool
}

func (o *outputOpts) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.StringVarP(&o.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	fs.IntVar(&o.width, "width", pipeline.DefaultWidth, "PNG width in pixels")
	fs.IntVar(&o.height, "height", 0, "PNG height in pixels (default: keep aspect ratio)")
	fs.Float64Var(&o.padding, "padding", 0, "empty margin around the drawing")
	fs.IntVar(&o.scale, "supersample", 1, fmt.Sprintf("render PNG at n times its size and scale down (1-%d)", pipeline.MaxSupersample))
	fs.IntVar(&o.budget, "max-strokes", pipeline.DefaultMaxStrokes, "refuse drawings that need more strokes")
	fs.BoolVar(&o.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&o.refresh, "refresh", false, "re-render even if cached")
	cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func (o *outputOpts) pipelineOptions(s config.Session) pipeline.Options {
	return pipeline.Options{
		Config:  s,
		Formats: parseFormats(o.formats),
		Width:   o.width,
		Height:  o.height,
		Padding: o.padding,
		Refresh: o.refresh,

		Supersample: o.scale,
		MaxStrokes:  o.budget,
	}
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		cfg configFlags
		out outputOpts
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the fractal to SVG, PNG or JSON",
		Long: `Render the fractal to SVG, PNG or JSON.

Parameters come from the defaults, then the --config TOML file, then any
flags given explicitly. Invalid values are rejected before anything is drawn.

Results are cached locally for faster subsequent runs.`,
		Example: `  trihex render
  trihex render --layer-count 5 --glow-layers 40 -f svg,png -o neon
  trihex render -c session.toml --red 1 --green 0.2 --blue 0.6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cfg.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), out.pipelineOptions(s), out)
		},
	}

	cfg.register(cmd)
	out.register(cmd)
	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, out outputOpts) error {
	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	prog := newProgress(opts.Logger)

	spinner := newSpinnerWithContext(ctx, "Drawing fractal...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, out.output)
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))
	printSuccess("Rendered fractal")
	printStats(result.Stats.StrokeCount, result.Stats.Shapes.Shapes(), result.CacheHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each format in order and returns the paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	base := basePath(output)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		format = strings.ToLower(strings.TrimSpace(format))
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if len(formats) == 1 && filepath.Ext(output) == "."+format {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath strips a known format extension from output. An empty output
// yields the default base name.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
