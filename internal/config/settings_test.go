package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PipeOpsHQ/support-chat/widget"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func missingEnvFile(t *testing.T) string {
	t.Helper()
	// an explicit missing file is an error, so point at an empty one
	path := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(LoadOptions{EnvFile: missingEnvFile(t), Lookup: mapLookup(nil)})
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, s.Addr)
	assert.Equal(t, widget.DefaultSDKBaseURL, s.SDKBaseURL)
	assert.Equal(t, DefaultLogLevel, s.LogLevel)
	assert.False(t, s.ReloadEnv)
	assert.Equal(t, 10*time.Second, s.ShutdownTimeout)
	assert.Equal(t, widget.Input{}, s.Connection)
	assert.Equal(t, widget.ModeCloudWithDefaultRuntime, widget.Resolve(s.Connection).Mode)
}

func TestLoad_ReadsConnectionFromEnv(t *testing.T) {
	s, err := Load(LoadOptions{EnvFile: missingEnvFile(t), Lookup: mapLookup(map[string]string{
		EnvPublicAPIKey: "abc123",
		EnvRuntimeURL:   "http://host/api",
	})})
	require.NoError(t, err)

	cfg := widget.Resolve(s.Connection)
	assert.Equal(t, widget.ConnectionConfig{
		Mode:         widget.ModeCloudWithExplicitRuntime,
		PublicAPIKey: "abc123",
		RuntimeURL:   "http://host/api/",
	}, cfg)
}

func TestLoad_AcceptsNextPublicAliases(t *testing.T) {
	s, err := Load(LoadOptions{EnvFile: missingEnvFile(t), Lookup: mapLookup(map[string]string{
		"NEXT_PUBLIC_COPILOT_PUBLIC_API_KEY": "from-next",
		"NEXT_PUBLIC_COPILOT_AGENT_URL":      "http://localhost:8000/chat",
	})})
	require.NoError(t, err)

	require.NotNil(t, s.Connection.PublicAPIKey)
	assert.Equal(t, "from-next", *s.Connection.PublicAPIKey)
	assert.Equal(t, widget.ModeDirectAgentURL, widget.Resolve(s.Connection).Mode)
}

func TestLoad_PrimaryNameWinsOverAlias(t *testing.T) {
	s, err := Load(LoadOptions{EnvFile: missingEnvFile(t), Lookup: mapLookup(map[string]string{
		EnvPublicAPIKey:                      "primary",
		"NEXT_PUBLIC_COPILOT_PUBLIC_API_KEY": "alias",
	})})
	require.NoError(t, err)
	assert.Equal(t, "primary", *s.Connection.PublicAPIKey)
}

func TestLoad_EmptyRuntimeURLIsPresent(t *testing.T) {
	s, err := Load(LoadOptions{EnvFile: missingEnvFile(t), Lookup: mapLookup(map[string]string{
		EnvRuntimeURL: "",
	})})
	require.NoError(t, err)

	require.NotNil(t, s.Connection.RuntimeURL)
	assert.Equal(t, widget.ModeCloudWithExplicitRuntime, widget.Resolve(s.Connection).Mode)
}

func TestLoad_DotenvIsLayeredUnderProcessEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"COPILOT_PUBLIC_API_KEY=from-file\nCOPILOT_RUNTIME_URL=http://file/api\nSUPPORT_CHAT_ADDR=0.0.0.0:9999\n",
	), 0o644))

	s, err := Load(LoadOptions{EnvFile: envFile, Lookup: mapLookup(map[string]string{
		EnvPublicAPIKey: "from-process",
	})})
	require.NoError(t, err)

	assert.Equal(t, "from-process", *s.Connection.PublicAPIKey)
	assert.Equal(t, "http://file/api", *s.Connection.RuntimeURL)
	assert.Equal(t, "0.0.0.0:9999", s.Addr)
}

func TestLoad_ExplicitMissingEnvFileFails(t *testing.T) {
	_, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "nope.env"), Lookup: mapLookup(nil)})
	assert.Error(t, err)
}

func TestLoad_DefaultEnvFileMayBeMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(LoadOptions{Lookup: mapLookup(nil)})
	assert.NoError(t, err)
}

func TestLoad_ConnectionFileFillsAbsentValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support-chat.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"publicApiKey":"file-key","runtimeUrl":"http://file/api","sdkBaseUrl":"https://cdn.example.com","addr":":7000"}`,
	), 0o644))

	s, err := Load(LoadOptions{
		EnvFile:    missingEnvFile(t),
		ConfigFile: path,
		Lookup:     mapLookup(map[string]string{EnvRuntimeURL: "http://env/api"}),
	})
	require.NoError(t, err)

	assert.Equal(t, "file-key", *s.Connection.PublicAPIKey)
	assert.Equal(t, "http://env/api", *s.Connection.RuntimeURL)
	assert.Nil(t, s.Connection.DirectURL)
	assert.Equal(t, "https://cdn.example.com", s.SDKBaseURL)
	assert.Equal(t, ":7000", s.Addr)
}

func TestLoad_BadConnectionFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{bad"), 0o644))

	_, err := Load(LoadOptions{EnvFile: missingEnvFile(t), ConfigFile: path, Lookup: mapLookup(nil)})
	assert.Error(t, err)
}

func TestLoad_ServerSettings(t *testing.T) {
	s, err := Load(LoadOptions{EnvFile: missingEnvFile(t), Lookup: mapLookup(map[string]string{
		EnvReloadEnv:       "yes",
		EnvLogLevel:        "debug",
		EnvOTLPEndpoint:    "localhost:4318",
		EnvShutdownTimeout: "3",
	})})
	require.NoError(t, err)

	assert.True(t, s.ReloadEnv)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "localhost:4318", s.OTLPEndpoint)
	assert.Equal(t, 3*time.Second, s.ShutdownTimeout)
}

func TestSettings_SourceSnapshotVersusLive(t *testing.T) {
	env := map[string]string{EnvPublicAPIKey: "first"}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	s, err := Load(LoadOptions{EnvFile: missingEnvFile(t), Lookup: lookup})
	require.NoError(t, err)
	static := s.Source()
	require.IsType(t, StaticSource{}, static)

	s.ReloadEnv = true
	live := s.Source()
	require.IsType(t, EnvSource{}, live)

	env[EnvPublicAPIKey] = "second"
	assert.Equal(t, "first", *static.Connection().PublicAPIKey)
	assert.Equal(t, "second", *live.Connection().PublicAPIKey)
}

func TestParseBoolString(t *testing.T) {
	assert.True(t, ParseBoolString("on", false))
	assert.False(t, ParseBoolString("0", true))
	assert.True(t, ParseBoolString("maybe", true))
}

func TestLookupString_FirstSetKeyWins(t *testing.T) {
	lookup := mapLookup(map[string]string{"B": "", "C": "c"})
	got := LookupString(lookup, "A", "B", "C")
	require.NotNil(t, got)
	assert.Equal(t, "", *got)
	assert.Nil(t, LookupString(lookup, "A"))
}
