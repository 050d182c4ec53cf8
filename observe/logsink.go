package observe

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink writes events to a zerolog logger. Failed events log at error
// level, everything else at debug.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(_ context.Context, event Event) error {
	event.Normalize()

	ev := s.logger.Debug()
	if event.Status == StatusFailed {
		ev = s.logger.Error()
	}
	ev = ev.
		Time("at", event.Timestamp).
		Str("event_id", event.ID).
		Str("kind", string(event.Kind)).
		Str("status", string(event.Status))
	if event.Name != "" {
		ev = ev.Str("name", event.Name)
	}
	if event.Mode != "" {
		ev = ev.Str("mode", string(event.Mode)).Bool("has_credential", event.HasCredential)
	}
	if event.Endpoint != "" {
		ev = ev.Str("endpoint", event.Endpoint)
	}
	if event.InstanceID != "" {
		ev = ev.Str("instance_id", event.InstanceID)
	}
	if event.RequestPath != "" {
		ev = ev.Str("path", event.RequestPath)
	}
	if event.DurationMs > 0 {
		ev = ev.Int64("duration_ms", event.DurationMs)
	}
	if event.Error != "" {
		ev = ev.Str("error", event.Error)
	}
	if len(event.Attributes) > 0 {
		ev = ev.Fields(event.Attributes)
	}

	msg := event.Message
	if msg == "" {
		msg = "widget " + string(event.Kind)
	}
	ev.Msg(msg)
	return nil
}
