package widget

// Labels is the static display configuration of the chat surface.
type Labels struct {
	Title              string `json:"title" yaml:"title"`
	InitialGreeting    string `json:"initialGreeting" yaml:"initialGreeting"`
	SystemInstructions string `json:"systemInstructions" yaml:"systemInstructions"`
	DefaultOpen        bool   `json:"defaultOpen" yaml:"defaultOpen"`
}

// DefaultLabels returns the labels of the customer support deployment.
func DefaultLabels() Labels {
	return Labels{
		Title:              "Customer Support Agent",
		InitialGreeting:    "Hi there! How can I help you?",
		SystemInstructions: "Welcome to the customer support agent! How can I help you today?",
		DefaultOpen:        true,
	}
}
