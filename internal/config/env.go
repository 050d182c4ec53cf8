package config

import (
	"os"
	"strconv"
	"strings"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LookupString returns the value of the first key that is set, even if it
// is set to an empty string. It returns nil when none of the keys is set.
func LookupString(lookup LookupFunc, keys ...string) *string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range keys {
		if value, ok := lookup(key); ok {
			return &value
		}
	}
	return nil
}

// StringEnv returns the trimmed value of the first non-empty key.
func StringEnv(lookup LookupFunc, fallback string, keys ...string) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range keys {
		if value, ok := lookup(key); ok {
			if value = strings.TrimSpace(value); value != "" {
				return value
			}
		}
	}
	return fallback
}

func ParseIntEnv(lookup LookupFunc, key string, fallback int) int {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	raw, _ := lookup(key)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func ParseBoolString(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
