package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "registry.gai.co.id", cfg.Registry.Host)
	require.Equal(t, "gai/docling_api", cfg.Registry.Repository)
	require.Equal(t, ".", cfg.Build.Context)
	require.Equal(t, "Dockerfile", cfg.Build.Dockerfile)
	require.Equal(t, "venv", cfg.Bootstrap.VenvDir)
	require.Equal(t, "requirements.txt", cfg.Bootstrap.Requirements)
	require.Equal(t, "app.main:app", cfg.Bootstrap.Module)
	require.Equal(t, 8000, cfg.Bootstrap.Port)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("DOCKLING_REGISTRY_HOST", "registry.example.com")
	t.Setenv("DOCKLING_BOOTSTRAP_PORT", "9000")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "registry.example.com", cfg.Registry.Host)
	require.Equal(t, 9000, cfg.Bootstrap.Port)
	// Untouched keys keep their defaults.
	require.Equal(t, "gai/docling_api", cfg.Registry.Repository)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dockling.yaml")
	content := `registry:
  host: registry.internal.example
  repository: team/docling
build:
  context: ./api
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "registry.internal.example", cfg.Registry.Host)
	require.Equal(t, "team/docling", cfg.Registry.Repository)
	require.Equal(t, "./api", cfg.Build.Context)
	// Keys absent from the file keep their defaults.
	require.Equal(t, "Dockerfile", cfg.Build.Dockerfile)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestNewDefaultConfigMatchesLoad(t *testing.T) {
	cfg := NewDefaultConfig()
	loaded, err := Load("")
	require.NoError(t, err)

	require.Equal(t, loaded.Registry, cfg.Registry)
	require.Equal(t, loaded.Build, cfg.Build)
	require.Equal(t, loaded.Bootstrap, cfg.Bootstrap)
}
