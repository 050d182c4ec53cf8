// Package widget resolves how the embedded agent chat widget reaches its
// backend and builds the page that mounts it.
//
// Resolution is a pure function of an [Input]: callers gather the raw
// values (see internal/config) and pass them in explicitly, so the same
// input always yields the same [ConnectionConfig].
package widget

import "strings"

// Mode selects how the widget addresses its backend.
type Mode string

const (
	// ModeCloudWithExplicitRuntime talks to a broker-compatible runtime at
	// an explicit base URL, authenticated with the public API key.
	ModeCloudWithExplicitRuntime Mode = "cloud-explicit-runtime"
	// ModeCloudWithDefaultRuntime relies on the SDK's built-in endpoint.
	ModeCloudWithDefaultRuntime Mode = "cloud-default-runtime"
	// ModeDirectAgentURL bypasses the broker and talks to a local agent.
	ModeDirectAgentURL Mode = "direct-agent-url"
)

const runtimeURLSeparator = "/"

// Input is the raw connection configuration. A nil field is absent; a
// pointer to an empty string was supplied but empty.
type Input struct {
	PublicAPIKey *string `json:"publicApiKey,omitempty" yaml:"publicApiKey,omitempty"`
	RuntimeURL   *string `json:"runtimeUrl,omitempty" yaml:"runtimeUrl,omitempty"`
	DirectURL    *string `json:"directUrl,omitempty" yaml:"directUrl,omitempty"`
}

// String returns a pointer to v, for building an Input literal.
func String(v string) *string {
	return &v
}

// ConnectionConfig is the resolved description of how the widget reaches
// its backend. Only the fields belonging to Mode are populated.
type ConnectionConfig struct {
	Mode         Mode   `json:"mode" yaml:"mode"`
	PublicAPIKey string `json:"publicApiKey,omitempty" yaml:"publicApiKey,omitempty"`
	RuntimeURL   string `json:"runtimeUrl,omitempty" yaml:"runtimeUrl,omitempty"`
	DirectURL    string `json:"directUrl,omitempty" yaml:"directUrl,omitempty"`
}

// HasCredential reports whether a public API key is part of the config.
func (c ConnectionConfig) HasCredential() bool {
	return c.PublicAPIKey != ""
}

// Resolve picks exactly one connection mode for in. A direct agent URL
// wins over a runtime URL, which wins over the SDK default endpoint.
//
// Resolve never fails. Values are not validated; a malformed key or URL is
// passed through and fails later, inside the SDK.
func Resolve(in Input) ConnectionConfig {
	if in.DirectURL != nil && *in.DirectURL != "" {
		return ConnectionConfig{
			Mode:      ModeDirectAgentURL,
			DirectURL: *in.DirectURL,
		}
	}

	if in.RuntimeURL != nil {
		return ConnectionConfig{
			Mode:         ModeCloudWithExplicitRuntime,
			PublicAPIKey: valueOf(in.PublicAPIKey),
			RuntimeURL:   NormalizeRuntimeURL(strings.TrimSpace(*in.RuntimeURL)),
		}
	}

	return ConnectionConfig{
		Mode:         ModeCloudWithDefaultRuntime,
		PublicAPIKey: valueOf(in.PublicAPIKey),
	}
}

// NormalizeRuntimeURL makes raw end in exactly one "/". The runtime
// answers the bare path with a redirect, and some clients drop the body of
// a streamed response when following it.
//
// Normalizing an already normalized URL returns it unchanged. A trailing
// run of separators is rewritten to a single one, so "http://host/api//"
// becomes "http://host/api/" and a bare "http://" becomes "http:/".
func NormalizeRuntimeURL(raw string) string {
	return strings.TrimRight(raw, runtimeURLSeparator) + runtimeURLSeparator
}

func valueOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
