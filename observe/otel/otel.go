// Package otel bridges the observe.Sink to OpenTelemetry tracing.
//
// Widget lifecycle events become spans so that resolutions and page
// mounts show up next to the HTTP server spans in any OpenTelemetry
// backend.
package otel

import (
	"context"
	"fmt"
	"time"

	"github.com/PipeOpsHQ/support-chat/observe"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/PipeOpsHQ/support-chat/widget"

// Sink implements observe.Sink by emitting OpenTelemetry spans.
type Sink struct {
	tracer trace.Tracer
}

// NewSink creates an OTel sink using the given TracerProvider.
// If tp is nil, it uses a noop tracer provider.
func NewSink(tp trace.TracerProvider) *Sink {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return &Sink{
		tracer: tp.Tracer(instrumentationName),
	}
}

// Emit converts an observe.Event into a span. When ctx carries a span
// (for example the otelhttp request span) the event span becomes its child.
func (s *Sink) Emit(ctx context.Context, event observe.Event) error {
	event.Normalize()
	if ctx == nil {
		ctx = context.Background()
	}

	startTime := event.Timestamp
	_, span := s.tracer.Start(ctx, spanNameFor(event), trace.WithTimestamp(startTime))

	attrs := []attribute.KeyValue{
		attribute.String("widget.event.id", event.ID),
		attribute.String("widget.event.kind", string(event.Kind)),
	}
	if event.Mode != "" {
		attrs = append(attrs,
			attribute.String("widget.connection.mode", string(event.Mode)),
			attribute.Bool("widget.connection.has_credential", event.HasCredential),
		)
	}
	if event.Endpoint != "" {
		attrs = append(attrs, attribute.String("widget.connection.endpoint", event.Endpoint))
	}
	if event.InstanceID != "" {
		attrs = append(attrs, attribute.String("widget.instance.id", event.InstanceID))
	}
	if event.Status != "" {
		attrs = append(attrs, attribute.String("widget.status", string(event.Status)))
	}
	if event.Message != "" {
		attrs = append(attrs, attribute.String("widget.message", truncate(event.Message, 1024)))
	}
	if event.DurationMs > 0 {
		attrs = append(attrs, attribute.Int64("widget.duration_ms", event.DurationMs))
	}
	for k, v := range event.Attributes {
		attrs = append(attrs, attribute.String("widget.attr."+k, fmt.Sprintf("%v", v)))
	}
	span.SetAttributes(attrs...)

	switch event.Status {
	case observe.StatusFailed:
		span.SetStatus(codes.Error, event.Error)
		if event.Error != "" {
			span.RecordError(fmt.Errorf("%s", event.Error))
		}
	case observe.StatusCompleted:
		span.SetStatus(codes.Ok, "")
	}

	endTime := startTime
	if event.DurationMs > 0 {
		endTime = startTime.Add(time.Duration(event.DurationMs) * time.Millisecond)
	}
	span.End(trace.WithTimestamp(endTime))
	return nil
}

func spanNameFor(event observe.Event) string {
	switch event.Kind {
	case observe.KindResolve:
		return "widget.resolve"
	case observe.KindMount:
		return "widget.mount"
	case observe.KindServer:
		if event.Name != "" {
			return "widget.server." + event.Name
		}
		return "widget.server"
	default:
		if event.Name != "" {
			return "widget." + event.Name
		}
		return "widget.event"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
