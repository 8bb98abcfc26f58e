package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trihex/pkg/cache"
	"github.com/matzehuels/trihex/pkg/config"
	"github.com/matzehuels/trihex/pkg/glow"
	"github.com/matzehuels/trihex/pkg/observability"
	"github.com/matzehuels/trihex/pkg/render/sink"
)

const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs generate → render with caching. Invalid options fail before
// any stroke is produced.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	renderer, err := opts.Config.Renderer()
	if err != nil {
		return nil, err
	}
	result := &Result{
		ConfigHash: ConfigHash(opts.Config),
		Stats: Stats{
			StrokeCount: renderer.Count().Strokes,
			Shapes:      renderer.Count(),
		},
	}

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, result.ConfigHash, opts); ok {
			logger.Debug("artifacts from cache", "hash", result.ConfigHash[:12], "formats", opts.Formats)
			result.Artifacts = artifacts
			result.CacheHit = true
			return result, nil
		}
	}

	genStart := time.Now()
	strokes, err := r.generate(ctx, renderer)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Strokes = strokes
	result.Stats.GenerateTime = time.Since(genStart)

	logger.Info("generated fractal",
		"strokes", len(strokes),
		"passes", renderer.Config().Passes(),
		"duration", result.Stats.GenerateTime)

	renderStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(strokes, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	r.store(ctx, result.ConfigHash, opts, artifacts)
	return result, nil
}

// Generate traces cfg into its stroke stream without rendering or caching.
func (r *Runner) Generate(ctx context.Context, cfg config.Session) ([]glow.Stroke, error) {
	renderer, err := cfg.Renderer()
	if err != nil {
		return nil, err
	}
	return r.generate(ctx, renderer)
}

func (r *Runner) generate(ctx context.Context, renderer *glow.Renderer) ([]glow.Stroke, error) {
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, renderer.Config().Shape(), renderer.Config().Passes())

	start := time.Now()
	cfg := renderer.Config()
	rec := sink.NewRecorder(renderer.Count().Strokes)
	var err error
	for i := range cfg.Passes() {
		before := rec.Len()
		if err = renderer.RenderPass(ctx, i, rec); err != nil {
			break
		}
		hooks.OnPass(ctx, i, cfg.Width(i), rec.Len()-before)
	}
	hooks.OnGenerateComplete(ctx, rec.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return rec.Strokes(), nil
}

// cached returns every requested artifact, or false if any one is missing.
// Cache errors count as misses.
func (r *Runner) cached(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			hooks.OnCacheMiss(ctx, keyTypeArtifact)
			return nil, false
		}
		hooks.OnCacheHit(ctx, keyTypeArtifact)
		artifacts[format] = data
	}
	return artifacts, true
}

// store writes artifacts to the cache. Failures are logged, not returned.
func (r *Runner) store(ctx context.Context, hash string, opts Options, artifacts map[string][]byte) {
	hooks := observability.Cache()
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// ConfigHash returns the SHA-256 of the configuration's canonical encoding.
func ConfigHash(cfg config.Session) string {
	return cache.Hash(cfg.Canonical())
}
