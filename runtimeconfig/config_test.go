package runtimeconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "support-chat.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Config(t *testing.T) {
	path := writeConfig(t, `{"publicApiKey":"pk","runtimeUrl":"http://host/api","sdkBaseUrl":" https://cdn.example.com ","addr":"0.0.0.0:9000"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.PublicAPIKey)
	assert.Equal(t, "pk", *cfg.PublicAPIKey)
	require.NotNil(t, cfg.RuntimeURL)
	assert.Equal(t, "http://host/api", *cfg.RuntimeURL)
	assert.Nil(t, cfg.DirectURL)
	assert.Equal(t, "https://cdn.example.com", cfg.SDKBaseURL)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
}

func TestLoad_KeepsEmptyButPresentFields(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"runtimeUrl":""}`))
	require.NoError(t, err)

	in := cfg.Input()
	require.NotNil(t, in.RuntimeURL)
	assert.Equal(t, "", *in.RuntimeURL)
	assert.Nil(t, in.PublicAPIKey)
}

func TestLoad_InvalidJSON(t *testing.T) {
	_, err := Load(writeConfig(t, "{bad"))
	assert.Error(t, err)
}

func TestLoad_RequiresPath(t *testing.T) {
	_, err := Load("  ")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
