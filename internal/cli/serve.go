package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trihex/pkg/cache"
	"github.com/matzehuels/trihex/pkg/config"
	"github.com/matzehuels/trihex/pkg/errors"
	"github.com/matzehuels/trihex/pkg/observability"
	"github.com/matzehuels/trihex/pkg/pipeline"
)

const (
	defaultAddr          = ":8080"
	defaultRenderTimeout = 30 * time.Second
	shutdownTimeout      = 5 * time.Second
)

// serveOpts holds the flags for the serve command.
type serveOpts struct {
	addr        string
	redisURL    string
	redisPrefix string
	mongoURI    string
	mongoDB     string
	noCache     bool
	maxStrokes  int
	concurrency int
	timeout     time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve fractals over HTTP",
		Long: `Serve fractals over HTTP.

  GET /fractal.svg?hex_size=250&layer_count=4&color.r=1
  GET /fractal.png?width=1200&supersample=2
  GET /fractal.json
  GET /defaults
  GET /healthz

Query parameters use the TOML key names; anything not given keeps its default.
Artifacts are cached in Redis with --redis and persisted in MongoDB with
--mongo. With both, Redis serves reads and MongoDB refills it. With neither,
the local cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the artifact cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&opts.redisPrefix, "redis-prefix", appName+":", "prefix for Redis keys")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for durable artifact storage (mongodb://host:27017)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", cache.DefaultMongoDatabase, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&opts.maxStrokes, "max-strokes", pipeline.DefaultMaxStrokes, "reject requests that would draw more strokes")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "maximum renders in flight")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", defaultRenderTimeout, "per-request render timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, c.Logger, opts).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Listening on %s", StyleLink.Render("http://"+displayAddr(opts.addr)))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache || (opts.redisURL == "" && opts.mongoURI == "") {
		return c.newCache(opts.noCache)
	}

	var fast, durable cache.Cache
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: opts.redisURL, Prefix: opts.redisPrefix})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "url", opts.redisURL)
		fast = rc
	}
	if opts.mongoURI != "" {
		mc, err := cache.NewMongoCache(ctx, cache.MongoConfig{URI: opts.mongoURI, Database: opts.mongoDB})
		if err != nil {
			if fast != nil {
				fast.Close()
			}
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Info("using mongo store", "database", opts.mongoDB)
		durable = mc
	}

	switch {
	case fast == nil:
		return durable, nil
	case durable == nil:
		return fast, nil
	}
	return cache.NewTiered(fast, durable, c.Logger), nil
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// =============================================================================
// HTTP Handlers
// =============================================================================

type server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   serveOpts
}

func newServer(runner *pipeline.Runner, logger *log.Logger, opts serveOpts) *server {
	if opts.maxStrokes <= 0 {
		opts.maxStrokes = pipeline.DefaultMaxStrokes
	}
	if opts.concurrency <= 0 {
		opts.concurrency = 1
	}
	if opts.timeout <= 0 {
		opts.timeout = defaultRenderTimeout
	}
	return &server{runner: runner, logger: logger, opts: opts}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/defaults", s.handleDefaults)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Throttle(s.opts.concurrency))
		r.Use(middleware.Timeout(s.opts.timeout))
		r.Get("/fractal.{format}", s.handleFractal)
	})
	return r
}

// requestID keeps a client-supplied X-Request-Id or assigns a UUID, and
// echoes it in the response. middleware.GetReqID reads it downstream.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe reports each request to the server hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.Defaults())
}

func (s *server) handleFractal(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	opts.MaxStrokes = s.opts.maxStrokes

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("ETag", `"`+result.ConfigHash[:16]+"-"+format+`"`)
	w.Header().Set("X-Trihex-Cache", cacheStatus)
	w.Header().Set("X-Trihex-Strokes", strconv.Itoa(result.Stats.StrokeCount))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// optionsFromQuery builds pipeline options from query parameters. Session
// fields use their TOML names; unknown parameters are rejected.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{Config: config.Defaults()}
	fields := make(map[string]config.Field, len(config.Prompts))
	for _, p := range config.Prompts {
		fields[string(p.Field)] = p.Field
	}

	for key, vals := range q {
		if len(vals) == 0 {
			continue
		}
		v := vals[len(vals)-1]
		if f, ok := fields[key]; ok {
			if err := opts.Config.Set(f, v); err != nil {
				return opts, err
			}
			continue
		}
		var err error
		switch key {
		case "width":
			opts.Width, err = strconv.Atoi(v)
		case "height":
			opts.Height, err = strconv.Atoi(v)
		case "padding":
			opts.Padding, err = strconv.ParseFloat(v, 64)
		case "supersample":
			opts.Supersample, err = strconv.Atoi(v)
		case "refresh":
			opts.Refresh, err = strconv.ParseBool(v)
		default:
			return opts, errors.New(errors.ErrCodeInvalidInput, "unknown parameter %q", key)
		}
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s", key)
		}
	}
	return opts, nil
}

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Field string      `json:"field,omitempty"`
	Error string      `json:"error"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		// The timeout middleware answers 504.
		s.logger.Warn("render timed out", "path", r.URL.Path)
		return
	case stderrors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		return
	}

	status, code := errors.HTTPStatus(err), errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Field: errors.FieldOf(err), Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
