package config

import "github.com/PipeOpsHQ/support-chat/widget"

// Source yields the connection input for one page render.
type Source interface {
	Connection() widget.Input
}

// StaticSource always returns the input captured at startup.
type StaticSource struct {
	Input widget.Input
}

func (s StaticSource) Connection() widget.Input {
	return s.Input
}

// EnvSource reads the environment on every call, so the next full page
// load sees a changed value. Fields the environment leaves absent come
// from Fallback.
type EnvSource struct {
	Lookup   LookupFunc
	Fallback widget.Input
}

func (s EnvSource) Connection() widget.Input {
	return connectionInput(s.Lookup, s.Fallback)
}
