package cli

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/trihex/pkg/config"
	"github.com/matzehuels/trihex/pkg/errors"
	"github.com/matzehuels/trihex/pkg/pipeline"
)

func testCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	c.Out = &bytes.Buffer{}
	old := stdout
	stdout = io.Discard
	t.Cleanup(func() { stdout = old })
	return c
}

func smallSession() config.Session {
	s := config.Defaults()
	s.LayerCount = 2
	s.GlowLayers = 3
	return s
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", defaultOutput},
		{"neon", "neon"},
		{"neon.svg", "neon"},
		{"out/neon.png", "out/neon"},
		{"neon.v2", "neon.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	tests := []struct {
		name    string
		formats []string
		output  string
		want    []string
	}{
		{"single with extension", []string{"svg"}, filepath.Join(dir, "a.svg"), []string{filepath.Join(dir, "a.svg")}},
		{"single without extension", []string{"svg"}, filepath.Join(dir, "b"), []string{filepath.Join(dir, "b.svg")}},
		{"mismatched extension", []string{"svg"}, filepath.Join(dir, "c.json"), []string{filepath.Join(dir, "c.svg")}},
		{"multiple", []string{"svg", "json"}, filepath.Join(dir, "sub", "d"), []string{filepath.Join(dir, "sub", "d.svg"), filepath.Join(dir, "sub", "d.json")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, err := writeArtifacts(artifacts, tt.formats, tt.output)
			if err != nil {
				t.Fatalf("writeArtifacts() error: %v", err)
			}
			if len(paths) != len(tt.want) {
				t.Fatalf("paths = %v, want %v", paths, tt.want)
			}
			for i, p := range paths {
				if p != tt.want[i] {
					t.Errorf("paths[%d] = %q, want %q", i, p, tt.want[i])
				}
				if _, err := os.Stat(p); err != nil {
					t.Errorf("file not written: %v", err)
				}
			}
		})
	}
}

func TestRunRender(t *testing.T) {
	c := testCLI(t)
	out := outputOpts{
		output:  filepath.Join(t.TempDir(), "fractal"),
		formats: "svg,png",
		width:   120,
	}

	if err := c.runRender(context.Background(), out.pipelineOptions(smallSession()), out); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	for _, ext := range []string{".svg", ".png"} {
		info, err := os.Stat(out.output + ext)
		if err != nil {
			t.Fatalf("missing %s output: %v", ext, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}

	// The second run is served from the cache and must write identical bytes.
	first, _ := os.ReadFile(out.output + ".svg")
	if err := c.runRender(context.Background(), out.pipelineOptions(smallSession()), out); err != nil {
		t.Fatalf("second runRender() error: %v", err)
	}
	second, _ := os.ReadFile(out.output + ".svg")
	if !bytes.Equal(first, second) {
		t.Error("cached render differs")
	}
}

func TestRunRenderInvalidWritesNothing(t *testing.T) {
	c := testCLI(t)
	s := smallSession()
	s.GapSize = -1
	out := outputOpts{output: filepath.Join(t.TempDir(), "bad"), width: pipeline.DefaultWidth}

	if err := c.runRender(context.Background(), out.pipelineOptions(s), out); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(out.output + ".svg"); !os.IsNotExist(err) {
		t.Error("invalid configuration produced output")
	}
}

func TestRunRenderOverBudget(t *testing.T) {
	c := testCLI(t)
	out := outputOpts{output: filepath.Join(t.TempDir(), "huge"), width: pipeline.DefaultWidth, budget: 100}

	err := c.runRender(context.Background(), out.pipelineOptions(smallSession()), out)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("runRender() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, err := os.Stat(out.output + ".svg"); !os.IsNotExist(err) {
		t.Error("over-budget configuration produced output")
	}
}

func TestRenderCommandSupersample(t *testing.T) {
	c := testCLI(t)
	path := filepath.Join(t.TempDir(), "x.png")
	root := c.RootCommand()
	root.SetArgs([]string{"render", "--layer-count", "1", "--glow-layers", "2", "-f", "png",
		"--width", "40", "--height", "30", "--supersample", "2", "-o", path})
	root.SetOut(io.Discard)

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render command error: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("png.DecodeConfig() error: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 30 {
		t.Errorf("size = %dx%d, want 40x30", cfg.Width, cfg.Height)
	}
}

func TestRenderCommand(t *testing.T) {
	c := testCLI(t)
	dir := t.TempDir()
	root := c.RootCommand()
	root.SetArgs([]string{"render", "--layer-count", "1", "--glow-layers", "2", "-f", "json", "-o", filepath.Join(dir, "x.json")})
	root.SetOut(io.Discard)

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render command error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "x.json")); err != nil {
		t.Errorf("output missing: %v", err)
	}
}
