package engine

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/registry"

	"github.com/gaigemini/dockling/internal/logger"
)

// Login authenticates against the registry named in the credentials.
//
// The daemon performs the actual authentication round-trip, so a success
// here also validates that the registry host is reachable from the daemon.
// A failure is fatal for the deployment sequence.
func (e *Engine) Login(ctx context.Context, creds Credentials) error {
	resp, err := e.client.RegistryLogin(ctx, creds.authConfig())
	if err != nil {
		return fmt.Errorf("login to %s failed: %w", creds.ServerAddress, err)
	}

	if resp.Status != "" {
		logger.Debug("Registry login: %s", resp.Status)
	}
	logger.Info("Logged in to %s as %s", creds.ServerAddress, creds.Username)
	return nil
}

// Push uploads a tagged image to its registry.
//
// Push progress is streamed to the engine output. The registry happily
// overwrites an existing tag; re-pushing the same version is not guarded
// against.
func (e *Engine) Push(ctx context.Context, ref string, creds Credentials) error {
	encodedAuth, err := registry.EncodeAuthConfig(creds.authConfig())
	if err != nil {
		return fmt.Errorf("failed to encode registry credentials: %w", err)
	}

	rc, err := e.client.ImagePush(ctx, ref, image.PushOptions{
		RegistryAuth: encodedAuth,
	})
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", ref, err)
	}
	defer rc.Close()

	if err := e.streamMessages(rc); err != nil {
		return fmt.Errorf("push of %s failed: %w", ref, err)
	}

	logger.Info("Pushed %s", ref)
	return nil
}
