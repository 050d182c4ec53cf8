package otel

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracingConfig selects where spans go. An empty OTLPEndpoint disables
// export.
type TracingConfig struct {
	OTLPEndpoint   string
	ServiceName    string
	ServiceVersion string
}

// TracerProvider owns the SDK provider, if one was built.
type TracerProvider struct {
	trace.TracerProvider
	sdk *sdktrace.TracerProvider
}

// NewTracerProvider returns an OTLP/HTTP exporting provider, or a noop
// provider when no endpoint is configured.
func NewTracerProvider(ctx context.Context, cfg TracingConfig) (*TracerProvider, error) {
	endpoint := strings.TrimSpace(cfg.OTLPEndpoint)
	if endpoint == "" {
		return &TracerProvider{TracerProvider: noop.NewTracerProvider()}, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "support-chat"
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create otlp exporter")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create trace resource")
	}

	sdk := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &TracerProvider{TracerProvider: sdk, sdk: sdk}, nil
}

// Shutdown flushes pending spans.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp == nil || tp.sdk == nil {
		return nil
	}
	return tp.sdk.Shutdown(ctx)
}
