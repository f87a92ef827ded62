package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaigemini/dockling/internal/config"
)

func testBootstrapConfig(dir string) config.BootstrapConfig {
	return config.BootstrapConfig{
		Dir:          dir,
		VenvDir:      "venv",
		Requirements: "requirements.txt",
		Module:       "app.main:app",
		Host:         "0.0.0.0",
		Port:         8000,
	}
}

func devSettings() *config.EnvSettings {
	return &config.EnvSettings{
		Profile:   config.ProfileDev,
		Debug:     true,
		LogLevel:  "DEBUG",
		UploadDir: "uploads",
	}
}

func TestRunSequence(t *testing.T) {
	dir := t.TempDir()
	runner := &Runner{Dir: dir, DryRun: true}

	b := New(testBootstrapConfig(dir), devSettings(), runner)
	require.NoError(t, b.Run(context.Background()))

	require.Equal(t, []string{
		"python3 -m venv venv",
		filepath.Join("venv", "bin", "pip") + " install -r requirements.txt",
		filepath.Join("venv", "bin", "uvicorn") + " app.main:app --host 0.0.0.0 --port 8000 --reload",
	}, runner.Commands())
}

func TestRunCreatesUploadDir(t *testing.T) {
	dir := t.TempDir()
	runner := &Runner{Dir: dir, DryRun: true}

	b := New(testBootstrapConfig(dir), devSettings(), runner)
	require.NoError(t, b.Run(context.Background()))

	info, err := os.Stat(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestRunReusesExistingVenv(t *testing.T) {
	dir := t.TempDir()
	venvBin := filepath.Join(dir, "venv", "bin")
	require.NoError(t, os.MkdirAll(venvBin, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(venvBin, "python"), []byte("#!/bin/sh\n"), 0755))

	runner := &Runner{Dir: dir, DryRun: true}
	b := New(testBootstrapConfig(dir), devSettings(), runner)
	require.NoError(t, b.Run(context.Background()))

	require.NotContains(t, runner.Commands(), "python3 -m venv venv")
}

func TestRunWithoutDebugSkipsReload(t *testing.T) {
	dir := t.TempDir()
	runner := &Runner{Dir: dir, DryRun: true}

	env := &config.EnvSettings{
		Profile:   config.ProfileProd,
		Debug:     false,
		LogLevel:  "WARNING",
		UploadDir: "uploads",
	}

	b := New(testBootstrapConfig(dir), env, runner)
	require.NoError(t, b.Run(context.Background()))

	cmds := runner.Commands()
	require.NotEmpty(t, cmds)
	require.NotContains(t, cmds[len(cmds)-1], "--reload")
}

func TestRunPassesProfileEnvironment(t *testing.T) {
	dir := t.TempDir()
	runner := &Runner{Dir: dir, DryRun: true}

	b := New(testBootstrapConfig(dir), devSettings(), runner)
	require.NoError(t, b.Run(context.Background()))

	require.Contains(t, runner.Env, "APP_ENV=dev")
	require.Contains(t, runner.Env, "UPLOAD_DIR=uploads")
}
