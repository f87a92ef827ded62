package engine

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/pkg/archive"

	"github.com/gaigemini/dockling/internal/logger"
)

// BuildOptions configures an image build.
type BuildOptions struct {
	// ContextDir is the directory used as the build context.
	ContextDir string

	// Dockerfile is the Dockerfile path relative to the context directory.
	Dockerfile string

	// Tags are the references applied to the built image.
	Tags []string
}

// Build builds an image from the given context directory and applies the
// requested tags.
//
// The context directory is archived into a tar stream and sent to the
// daemon; build progress is streamed to the engine output as it arrives.
// Any daemon-side build failure (bad Dockerfile, failing RUN step) is
// surfaced as an error.
func (e *Engine) Build(ctx context.Context, opts BuildOptions) error {
	if len(opts.Tags) == 0 {
		return fmt.Errorf("at least one image tag is required")
	}
	if opts.ContextDir == "" {
		opts.ContextDir = "."
	}
	if opts.Dockerfile == "" {
		opts.Dockerfile = "Dockerfile"
	}

	logger.Debug("Archiving build context: %s", opts.ContextDir)

	buildCtx, err := archive.TarWithOptions(opts.ContextDir, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("failed to archive build context %s: %w", opts.ContextDir, err)
	}
	defer buildCtx.Close()

	resp, err := e.client.ImageBuild(ctx, buildCtx, build.ImageBuildOptions{
		Tags:       opts.Tags,
		Dockerfile: opts.Dockerfile,
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to build image: %w", err)
	}
	defer resp.Body.Close()

	if err := e.streamMessages(resp.Body); err != nil {
		return fmt.Errorf("image build failed: %w", err)
	}

	logger.Info("Image built: %s", opts.Tags[0])
	return nil
}

// Tag creates an additional reference aliasing the same image content.
//
// Tagging is a local metadata operation; the daemon does not contact the
// registry. Re-tagging an existing alias simply moves it.
func (e *Engine) Tag(ctx context.Context, source, target string) error {
	if err := e.client.ImageTag(ctx, source, target); err != nil {
		return fmt.Errorf("failed to tag %s as %s: %w", source, target, err)
	}

	logger.Info("Tagged %s as %s", source, target)
	return nil
}
