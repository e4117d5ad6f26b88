package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 120, cfg.Server.SessionTTLMins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, int64(2048), cfg.LLM.MaxTokens)
	assert.Equal(t, 20, cfg.LLM.RequestsPerMinute)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("FINLENS_SERVER_PORT", "9999")
	t.Setenv("FINLENS_LLM_PROVIDER", "gemini")
	t.Setenv("FINLENS_LLM_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := []byte("server:\n  port: 3000\nllm:\n  model: claude-sonnet-4-5-20250929\n")
	require.NoError(t, os.WriteFile(dir+"/config.yaml", yaml, 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.LLM.Model)
	// Untouched keys keep defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestResolvedModel(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5-20251001", LLMConfig{Provider: "anthropic"}.ResolvedModel())
	assert.Equal(t, "gemini-2.5-flash", LLMConfig{Provider: "gemini"}.ResolvedModel())
	assert.Equal(t, "custom", LLMConfig{Provider: "gemini", Model: "custom"}.ResolvedModel())
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "noisy", Format: "json"})
	require.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}

// chdirTemp runs the test from an empty directory so a developer's local
// config.yaml cannot leak into assertions.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}
