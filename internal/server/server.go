// Package server hosts the page that mounts the support chat widget.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/PipeOpsHQ/support-chat/internal/config"
	"github.com/PipeOpsHQ/support-chat/internal/metrics"
	"github.com/PipeOpsHQ/support-chat/observe"
	"github.com/PipeOpsHQ/support-chat/widget"
)

const defaultShutdownTimeout = 10 * time.Second

// Options configures the widget host.
type Options struct {
	// Addr is the listen address (default: config.DefaultAddr).
	Addr string
	// Source yields the connection input for each page render.
	Source config.Source
	// Labels are the fixed display labels of the chat surface.
	Labels widget.Labels
	// Assets locate the SDK modules the page imports.
	Assets widget.Assets
	// Sink receives resolve and mount events. Default: observe.NoopSink.
	Sink observe.Sink
	// Metrics may be nil.
	Metrics *metrics.Metrics
	// Gatherer backs /metrics. Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// TracerProvider instruments incoming requests. Default: noop.
	TracerProvider trace.TracerProvider
	// Logger defaults to a disabled logger.
	Logger          *zerolog.Logger
	ShutdownTimeout time.Duration
}

// Server renders one independent widget instance per page load.
type Server struct {
	opts    Options
	logger  zerolog.Logger
	handler http.Handler
}

func New(opts Options) *Server {
	if strings.TrimSpace(opts.Addr) == "" {
		opts.Addr = config.DefaultAddr
	}
	if opts.Source == nil {
		opts.Source = config.StaticSource{}
	}
	if opts.Labels == (widget.Labels{}) {
		opts.Labels = widget.DefaultLabels()
	}
	if opts.Assets == (widget.Assets{}) {
		opts.Assets = widget.AssetsFromBase("")
	}
	if opts.Sink == nil {
		opts.Sink = observe.NoopSink{}
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = noop.NewTracerProvider()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	s := &Server{opts: opts, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /widget/config", s.handleWidgetConfig)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	s.handler = otelhttp.NewHandler(mux, "support-chat",
		otelhttp.WithTracerProvider(opts.TracerProvider),
	)
	return s
}

// Handler returns the instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.opts.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	addr := ln.Addr().String()
	s.logger.Info().Str("addr", addr).Msg("support chat listening")
	_ = s.opts.Sink.Emit(ctx, observe.Event{Kind: observe.KindServer, Name: "start", Status: observe.StatusStarted, Message: "listening on " + addr})

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("shutting down")
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
	})

	err := eg.Wait()
	status := observe.StatusCompleted
	var errText string
	if err != nil {
		status = observe.StatusFailed
		errText = err.Error()
	}
	_ = s.opts.Sink.Emit(context.Background(), observe.Event{Kind: observe.KindServer, Name: "stop", Status: status, Error: errText})
	return err
}

// handlePage resolves the connection and renders the widget page. Every
// request gets its own resolution and instance; nothing is cached.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	cfg := widget.Resolve(s.opts.Source.Connection())
	resolved := observe.ResolvedEvent(cfg)
	resolved.RequestPath = r.URL.Path
	resolved.Timestamp = start
	_ = s.opts.Sink.Emit(ctx, resolved)

	page := widget.NewPage(widget.NewMount(cfg, s.opts.Labels), s.opts.Assets)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		s.opts.Metrics.ObserveFailure()
		s.logger.Error().Err(err).Str("mode", string(cfg.Mode)).Msg("widget page render failed")
		_ = s.opts.Sink.Emit(ctx, observe.Event{
			Kind:       observe.KindMount,
			Status:     observe.StatusFailed,
			Mode:       cfg.Mode,
			InstanceID: page.InstanceID,
			Error:      err.Error(),
			Attributes: requestAttributes(r),
		})
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	took := time.Since(start)
	s.opts.Metrics.ObserveRender(cfg.Mode, took)
	_ = s.opts.Sink.Emit(ctx, observe.Event{
		Timestamp:     start,
		Kind:          observe.KindMount,
		Status:        observe.StatusCompleted,
		Mode:          cfg.Mode,
		HasCredential: cfg.HasCredential(),
		InstanceID:    page.InstanceID,
		RequestPath:   r.URL.Path,
		DurationMs:    took.Milliseconds(),
		Attributes:    requestAttributes(r),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func requestAttributes(r *http.Request) map[string]any {
	attrs := map[string]any{}
	if ua := r.UserAgent(); ua != "" {
		attrs["user_agent"] = ua
	}
	if ref := r.Referer(); ref != "" {
		attrs["referer"] = ref
	}
	return attrs
}

func (s *Server) handleWidgetConfig(w http.ResponseWriter, _ *http.Request) {
	cfg := widget.Resolve(s.opts.Source.Connection())
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, widget.NewMount(cfg, s.opts.Labels))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	cfg := widget.Resolve(s.opts.Source.Connection())
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"mode":          cfg.Mode,
		"hasCredential": cfg.HasCredential(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
