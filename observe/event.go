package observe

import (
	"time"

	"github.com/google/uuid"

	"github.com/PipeOpsHQ/support-chat/widget"
)

type Kind string

type Status string

const (
	KindResolve Kind = "resolve"
	KindMount   Kind = "mount"
	KindServer  Kind = "server"
	KindCustom  Kind = "custom"
)

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Event is a widget lifecycle record. It never carries the API key.
type Event struct {
	ID            string         `json:"id,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
	InstanceID    string         `json:"instanceId,omitempty"`
	RequestPath   string         `json:"requestPath,omitempty"`
	Kind          Kind           `json:"kind"`
	Status        Status         `json:"status,omitempty"`
	Name          string         `json:"name,omitempty"`
	Mode          widget.Mode    `json:"mode,omitempty"`
	HasCredential bool           `json:"hasCredential,omitempty"`
	Endpoint      string         `json:"endpoint,omitempty"`
	Message       string         `json:"message,omitempty"`
	Error         string         `json:"error,omitempty"`
	DurationMs    int64          `json:"durationMs,omitempty"`
	Attributes    map[string]any `json:"attributes,omitempty"`
}

// ResolvedEvent describes the outcome of resolving cfg.
func ResolvedEvent(cfg widget.ConnectionConfig) Event {
	return Event{
		Kind:          KindResolve,
		Status:        StatusCompleted,
		Mode:          cfg.Mode,
		HasCredential: cfg.HasCredential(),
		Endpoint:      endpointOf(cfg),
	}
}

func endpointOf(cfg widget.ConnectionConfig) string {
	switch cfg.Mode {
	case widget.ModeDirectAgentURL:
		return cfg.DirectURL
	case widget.ModeCloudWithExplicitRuntime:
		return cfg.RuntimeURL
	default:
		return ""
	}
}

// Normalize fills the ID, timestamp, kind and attribute map when unset.
func (e *Event) Normalize() {
	if e == nil {
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Kind == "" {
		e.Kind = KindCustom
	}
	if e.Attributes == nil {
		e.Attributes = map[string]any{}
	}
}
