package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"

	"github.com/gaigemini/dockling/internal/logger"
)

// ProbeGPU checks for a GPU-capable container runtime by running nvidia-smi
// in a diagnostic container with an nvidia device request, the API
// equivalent of `docker run --rm --gpus all <image> nvidia-smi`.
//
// GPU support is a runtime concern, not a build-time blocker: callers treat
// any error from this probe as advisory and continue the deployment with a
// warning.
func (e *Engine) ProbeGPU(ctx context.Context, probeImage string) error {
	// Best-effort pull; the image may already be present locally and an
	// offline host should still be able to probe with a cached image.
	if rc, err := e.client.ImagePull(ctx, probeImage, image.PullOptions{}); err == nil {
		_, _ = io.Copy(io.Discard, rc)
		rc.Close()
	} else {
		logger.Debug("GPU probe image pull failed (continuing with local image): %v", err)
	}

	resp, err := e.client.ContainerCreate(ctx,
		&container.Config{
			Image: probeImage,
			Cmd:   []string{"nvidia-smi"},
		},
		&container.HostConfig{
			Resources: container.Resources{
				DeviceRequests: []container.DeviceRequest{
					{
						Driver:       "nvidia",
						Count:        -1, // all GPUs
						Capabilities: [][]string{{"gpu"}},
					},
				},
			},
		},
		nil, nil, "")
	if err != nil {
		return fmt.Errorf("failed to create GPU probe container: %w", err)
	}

	containerID := resp.ID
	defer func() {
		removeCtx := context.WithoutCancel(ctx)
		if err := e.client.ContainerRemove(removeCtx, containerID, container.RemoveOptions{
			Force:         true,
			RemoveVolumes: true,
		}); err != nil {
			logger.Debug("Failed to remove GPU probe container %s: %v", containerID[:12], err)
		}
	}()

	if err := e.client.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start GPU probe container: %w", err)
	}

	waitCh, errCh := e.client.ContainerWait(ctx, containerID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to wait for GPU probe container: %w", err)
	case status := <-waitCh:
		if status.StatusCode != 0 {
			return fmt.Errorf("GPU probe exited with status %d", status.StatusCode)
		}
	}

	logger.Debug("GPU runtime probe succeeded")
	return nil
}
