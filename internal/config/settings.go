// Package config is the only place that reads the process environment.
// Everything downstream receives explicit values.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/PipeOpsHQ/support-chat/runtimeconfig"
	"github.com/PipeOpsHQ/support-chat/widget"
)

const (
	EnvPublicAPIKey    = "COPILOT_PUBLIC_API_KEY"
	EnvRuntimeURL      = "COPILOT_RUNTIME_URL"
	EnvDirectURL       = "COPILOT_AGENT_URL"
	EnvAddr            = "SUPPORT_CHAT_ADDR"
	EnvSDKBase         = "SUPPORT_CHAT_SDK_BASE"
	EnvLogLevel        = "SUPPORT_CHAT_LOG_LEVEL"
	EnvReloadEnv       = "SUPPORT_CHAT_RELOAD_ENV"
	EnvOTLPEndpoint    = "SUPPORT_CHAT_OTLP_ENDPOINT"
	EnvShutdownTimeout = "SUPPORT_CHAT_SHUTDOWN_TIMEOUT_SECONDS"

	nextPublicPrefix = "NEXT_PUBLIC_"

	DefaultAddr     = "127.0.0.1:8090"
	DefaultEnvFile  = ".env"
	DefaultLogLevel = "info"
)

// Settings is everything the service needs, read once at startup.
type Settings struct {
	Connection      widget.Input
	Addr            string
	SDKBaseURL      string
	LogLevel        string
	ReloadEnv       bool
	OTLPEndpoint    string
	ShutdownTimeout time.Duration

	// lookup and fileInput let an EnvSource re-read the same layers later.
	lookup    LookupFunc
	fileInput widget.Input
}

// LoadOptions controls where settings come from.
type LoadOptions struct {
	// EnvFile is a dotenv file layered under the process environment.
	// Empty means DefaultEnvFile, which may be missing.
	EnvFile string
	// ConfigFile is an optional JSON connection file, see runtimeconfig.
	ConfigFile string
	// Lookup replaces os.LookupEnv.
	Lookup LookupFunc
}

// Load builds Settings from, in decreasing priority, the process
// environment, the dotenv file, and the JSON connection file.
func Load(opts LoadOptions) (Settings, error) {
	base := opts.Lookup
	if base == nil {
		base = os.LookupEnv
	}

	envFile := strings.TrimSpace(opts.EnvFile)
	explicitEnvFile := envFile != ""
	if !explicitEnvFile {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if explicitEnvFile || !os.IsNotExist(errors.Cause(err)) {
			return Settings{}, errors.Wrapf(err, "read env file %q", envFile)
		}
		dotenv = map[string]string{}
	}
	lookup := layered(base, dotenv)

	var file runtimeconfig.Config
	if path := strings.TrimSpace(opts.ConfigFile); path != "" {
		file, err = runtimeconfig.Load(path)
		if err != nil {
			return Settings{}, errors.Wrap(err, "load connection file")
		}
	}

	addrDefault := DefaultAddr
	if file.Addr != "" {
		addrDefault = file.Addr
	}
	sdkDefault := widget.DefaultSDKBaseURL
	if file.SDKBaseURL != "" {
		sdkDefault = file.SDKBaseURL
	}
	reload, _ := lookup(EnvReloadEnv)
	timeout := ParseIntEnv(lookup, EnvShutdownTimeout, 10)
	if timeout <= 0 {
		timeout = 10
	}

	s := Settings{
		Addr:            StringEnv(lookup, addrDefault, EnvAddr),
		SDKBaseURL:      StringEnv(lookup, sdkDefault, EnvSDKBase),
		LogLevel:        StringEnv(lookup, DefaultLogLevel, EnvLogLevel),
		ReloadEnv:       ParseBoolString(reload, false),
		OTLPEndpoint:    StringEnv(lookup, "", EnvOTLPEndpoint),
		ShutdownTimeout: time.Duration(timeout) * time.Second,
		lookup:          lookup,
		fileInput:       file.Input(),
	}
	s.Connection = connectionInput(lookup, s.fileInput)
	return s, nil
}

// Source returns where page renders read their connection input from:
// the startup snapshot, or the live environment when ReloadEnv is set.
func (s Settings) Source() Source {
	if s.ReloadEnv && s.lookup != nil {
		return EnvSource{Lookup: s.lookup, Fallback: s.fileInput}
	}
	return StaticSource{Input: s.Connection}
}

func connectionInput(lookup LookupFunc, fallback widget.Input) widget.Input {
	return widget.Input{
		PublicAPIKey: firstPresent(LookupString(lookup, withAlias(EnvPublicAPIKey)...), fallback.PublicAPIKey),
		RuntimeURL:   firstPresent(LookupString(lookup, withAlias(EnvRuntimeURL)...), fallback.RuntimeURL),
		DirectURL:    firstPresent(LookupString(lookup, withAlias(EnvDirectURL)...), fallback.DirectURL),
	}
}

// withAlias accepts the NEXT_PUBLIC_ names used by Next.js deployments.
func withAlias(key string) []string {
	return []string{key, nextPublicPrefix + key}
}

func firstPresent(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func layered(base LookupFunc, dotenv map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if value, ok := base(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
}
