// Package runtimeconfig loads the optional JSON connection file.
//
// The file mirrors the environment variables: any field it sets is used
// only where the environment leaves the value absent.
package runtimeconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/PipeOpsHQ/support-chat/widget"
)

type Config struct {
	PublicAPIKey *string `json:"publicApiKey"`
	RuntimeURL   *string `json:"runtimeUrl"`
	DirectURL    *string `json:"directUrl"`
	SDKBaseURL   string  `json:"sdkBaseUrl"`
	Addr         string  `json:"addr"`
}

func Load(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Config{}, errors.New("config path is required")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to resolve config path")
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config file %q", absPath)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to decode config file %q as JSON", absPath)
	}

	cfg.SDKBaseURL = strings.TrimSpace(cfg.SDKBaseURL)
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	return cfg, nil
}

// Input returns the connection fields as a resolver input.
func (c Config) Input() widget.Input {
	return widget.Input{
		PublicAPIKey: c.PublicAPIKey,
		RuntimeURL:   c.RuntimeURL,
		DirectURL:    c.DirectURL,
	}
}
