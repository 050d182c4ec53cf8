package widget

// ProviderProps are passed to the SDK's context provider. Fields that do
// not belong to the resolved mode stay empty and are omitted on the wire.
type ProviderProps struct {
	PublicAPIKey string `json:"publicApiKey,omitempty" yaml:"publicApiKey,omitempty"`
	RuntimeURL   string `json:"runtimeUrl,omitempty" yaml:"runtimeUrl,omitempty"`
	AgentURL     string `json:"agentUrl,omitempty" yaml:"agentUrl,omitempty"`
}

// SurfaceLabels is the labels structure of the SDK's chat surface.
type SurfaceLabels struct {
	Title   string `json:"title" yaml:"title"`
	Initial string `json:"initial" yaml:"initial"`
}

// SurfaceProps are passed to the SDK's chat surface.
type SurfaceProps struct {
	Instructions string        `json:"instructions" yaml:"instructions"`
	DefaultOpen  bool          `json:"defaultOpen" yaml:"defaultOpen"`
	Labels       SurfaceLabels `json:"labels" yaml:"labels"`
}

// Mount is the provider/surface pair for one widget instance.
type Mount struct {
	Mode     Mode          `json:"mode" yaml:"mode"`
	Provider ProviderProps `json:"provider" yaml:"provider"`
	Surface  SurfaceProps  `json:"surface" yaml:"surface"`
}

// NewMount binds cfg and labels into the props the SDK expects.
func NewMount(cfg ConnectionConfig, labels Labels) Mount {
	return Mount{
		Mode:     cfg.Mode,
		Provider: providerProps(cfg),
		Surface: SurfaceProps{
			Instructions: labels.SystemInstructions,
			DefaultOpen:  labels.DefaultOpen,
			Labels: SurfaceLabels{
				Title:   labels.Title,
				Initial: labels.InitialGreeting,
			},
		},
	}
}

func providerProps(cfg ConnectionConfig) ProviderProps {
	switch cfg.Mode {
	case ModeDirectAgentURL:
		return ProviderProps{AgentURL: cfg.DirectURL}
	case ModeCloudWithExplicitRuntime:
		return ProviderProps{PublicAPIKey: cfg.PublicAPIKey, RuntimeURL: cfg.RuntimeURL}
	default:
		return ProviderProps{PublicAPIKey: cfg.PublicAPIKey}
	}
}
