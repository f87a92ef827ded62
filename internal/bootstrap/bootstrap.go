// Package bootstrap prepares an isolated local Python environment for the
// Docling API and starts the server directly, without any container:
// virtualenv creation, dependency installation, upload directory creation,
// and the uvicorn launch.
//
// The sequence is linear and carries no reliability contract: re-running it
// reuses an existing virtualenv and re-installs requirements, mirroring the
// behavior of the underlying tools.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gaigemini/dockling/internal/config"
	"github.com/gaigemini/dockling/internal/logger"
)

// Bootstrapper prepares the local environment and launches the API server.
type Bootstrapper struct {
	cfg    config.BootstrapConfig
	env    *config.EnvSettings
	runner *Runner
}

// New creates a Bootstrapper for the given bootstrap settings and resolved
// environment profile.
func New(cfg config.BootstrapConfig, env *config.EnvSettings, runner *Runner) *Bootstrapper {
	if runner == nil {
		runner = &Runner{Dir: cfg.Dir}
	}
	return &Bootstrapper{
		cfg:    cfg,
		env:    env,
		runner: runner,
	}
}

// Run executes the bootstrap sequence:
//
//  1. Create the virtualenv if it does not exist yet.
//  2. Install the declared dependencies into it.
//  3. Ensure the upload directory exists.
//  4. Launch the API server. With a debug profile the server runs in
//     auto-reload mode. This step blocks until the server exits.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.ensureVenv(ctx); err != nil {
		return err
	}
	if err := b.installRequirements(ctx); err != nil {
		return err
	}
	if err := b.ensureUploadDir(); err != nil {
		return err
	}
	return b.startServer(ctx)
}

// venvBin returns the path of an executable inside the virtualenv.
func (b *Bootstrapper) venvBin(name string) string {
	return filepath.Join(b.cfg.VenvDir, "bin", name)
}

func (b *Bootstrapper) ensureVenv(ctx context.Context) error {
	marker := filepath.Join(b.cfg.Dir, b.venvBin("python"))
	if _, err := os.Stat(marker); err == nil {
		logger.Info("Reusing existing virtualenv: %s", b.cfg.VenvDir)
		return nil
	}

	logger.Info("Creating virtualenv: %s", b.cfg.VenvDir)
	if err := b.runner.Run(ctx, "python3", "-m", "venv", b.cfg.VenvDir); err != nil {
		return fmt.Errorf("failed to create virtualenv: %w", err)
	}
	return nil
}

func (b *Bootstrapper) installRequirements(ctx context.Context) error {
	logger.Info("Installing dependencies from %s", b.cfg.Requirements)
	if err := b.runner.Run(ctx, b.venvBin("pip"), "install", "-r", b.cfg.Requirements); err != nil {
		return fmt.Errorf("failed to install dependencies: %w", err)
	}
	return nil
}

func (b *Bootstrapper) ensureUploadDir() error {
	dir := filepath.Join(b.cfg.Dir, b.env.UploadDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	logger.Debug("Upload directory ready: %s", dir)
	return nil
}

func (b *Bootstrapper) startServer(ctx context.Context) error {
	args := []string{
		b.cfg.Module,
		"--host", b.cfg.Host,
		"--port", strconv.Itoa(b.cfg.Port),
	}
	if b.env.Debug {
		args = append(args, "--reload")
	}

	b.runner.Env = append(b.runner.Env,
		"APP_ENV="+string(b.env.Profile),
		"UPLOAD_DIR="+b.env.UploadDir,
	)

	logger.Info("Starting API server (%s profile) on %s:%d", b.env.Profile, b.cfg.Host, b.cfg.Port)
	return b.runner.Run(ctx, b.venvBin("uvicorn"), args...)
}
