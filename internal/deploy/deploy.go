// Package deploy implements the deployment sequence for the Docling API
// image: engine check, GPU probe, build, conditional latest alias, registry
// login, and push.
//
// The sequence is strictly fail-fast: the first fatal error aborts the whole
// operation. There are no retries, no rollback, and no cleanup of tags
// created before the failing step. The single advisory step is the GPU
// runtime probe, which only produces a warning.
package deploy

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gaigemini/dockling/internal/config"
	"github.com/gaigemini/dockling/internal/engine"
	"github.com/gaigemini/dockling/internal/image"
	"github.com/gaigemini/dockling/internal/logger"
)

// ContainerEngine abstracts the engine operations the deployer drives.
// *engine.Engine satisfies it; tests substitute a fake to verify the
// sequencing contract.
type ContainerEngine interface {
	Ping(ctx context.Context) error
	ProbeGPU(ctx context.Context, probeImage string) error
	Build(ctx context.Context, opts engine.BuildOptions) error
	Tag(ctx context.Context, source, target string) error
	Login(ctx context.Context, creds engine.Credentials) error
	Push(ctx context.Context, ref string, creds engine.Credentials) error
}

// Options configures a single deployment run.
type Options struct {
	// Version is the image version tag. Empty defaults to "latest".
	Version string

	// Credentials authenticate the push against the registry. Ignored when
	// SkipPush is set.
	Credentials engine.Credentials

	// SkipBuild runs only the push stage (login + push). The image and its
	// latest alias must already exist locally.
	SkipBuild bool

	// SkipPush runs only the build stage (engine check, GPU probe, build,
	// conditional latest alias) without touching the registry.
	SkipPush bool
}

// Deployer orchestrates the deployment sequence against a container engine.
type Deployer struct {
	engine ContainerEngine
	cfg    *config.Config
	out    io.Writer
}

// New creates a Deployer. out receives the stage banners and the final
// summary; nil defaults to stdout.
func New(eng ContainerEngine, cfg *config.Config, out io.Writer) *Deployer {
	if out == nil {
		out = os.Stdout
	}
	return &Deployer{
		engine: eng,
		cfg:    cfg,
		out:    out,
	}
}

// Run executes the deployment sequence and returns the references that were
// pushed, in push order.
//
// The sequence:
//  1. Engine reachability probe. Fatal: nothing else runs on failure.
//  2. GPU runtime probe (build stage only). Advisory: a failure logs a
//     warning and the build proceeds.
//  3. Image build, tagged with the fully qualified version reference. Fatal.
//  4. When the version is not "latest", an additional latest alias tag.
//  5. Registry login (push stage only). Fatal.
//  6. Push of the version tag, then of the latest alias if one was created.
//
// On success a summary of every pushed reference and copy-paste usage hints
// are written to the deployer output.
func (d *Deployer) Run(ctx context.Context, opts Options) ([]string, error) {
	versionRef := image.NewReference(d.cfg.Registry.Host, d.cfg.Registry.Repository, opts.Version)
	if err := versionRef.Validate(); err != nil {
		return nil, err
	}
	latestRef := versionRef.Latest()

	fmt.Fprintf(d.out, "==> Checking container engine\n")
	if err := d.engine.Ping(ctx); err != nil {
		return nil, err
	}

	if !opts.SkipBuild {
		fmt.Fprintf(d.out, "==> Checking GPU runtime support\n")
		if err := d.engine.ProbeGPU(ctx, d.cfg.Build.GPUProbeImage); err != nil {
			logger.Warn("GPU runtime unavailable, building without GPU support: %v", err)
		}

		fmt.Fprintf(d.out, "==> Building %s\n", versionRef)
		if err := d.engine.Build(ctx, engine.BuildOptions{
			ContextDir: d.cfg.Build.Context,
			Dockerfile: d.cfg.Build.Dockerfile,
			Tags:       []string{versionRef.String()},
		}); err != nil {
			return nil, err
		}
	}

	// A specific version also moves the floating latest alias. For a
	// push-only run the re-tag guarantees the alias points at the version
	// being pushed rather than at an older build.
	if !versionRef.IsLatest() {
		fmt.Fprintf(d.out, "==> Tagging %s\n", latestRef)
		if err := d.engine.Tag(ctx, versionRef.String(), latestRef.String()); err != nil {
			return nil, err
		}
	}

	if opts.SkipPush {
		fmt.Fprintf(d.out, "\nBuild complete: %s\n", versionRef)
		if !versionRef.IsLatest() {
			fmt.Fprintf(d.out, "Also tagged:    %s\n", latestRef)
		}
		return nil, nil
	}

	fmt.Fprintf(d.out, "==> Logging in to %s\n", d.cfg.Registry.Host)
	if err := d.engine.Login(ctx, opts.Credentials); err != nil {
		return nil, err
	}

	pushed := make([]string, 0, 2)

	fmt.Fprintf(d.out, "==> Pushing %s\n", versionRef)
	if err := d.engine.Push(ctx, versionRef.String(), opts.Credentials); err != nil {
		return nil, err
	}
	pushed = append(pushed, versionRef.String())

	if !versionRef.IsLatest() {
		fmt.Fprintf(d.out, "==> Pushing %s\n", latestRef)
		if err := d.engine.Push(ctx, latestRef.String(), opts.Credentials); err != nil {
			return nil, err
		}
		pushed = append(pushed, latestRef.String())
	}

	d.printSummary(pushed, versionRef)

	return pushed, nil
}

// printSummary writes the final success report and usage hints.
func (d *Deployer) printSummary(pushed []string, versionRef image.Reference) {
	fmt.Fprintf(d.out, "\nDeployment complete. Pushed:\n")
	for _, ref := range pushed {
		fmt.Fprintf(d.out, "  %s\n", ref)
	}

	fmt.Fprintf(d.out, "\nTo pull the image:\n")
	fmt.Fprintf(d.out, "  docker pull %s\n", versionRef)
	fmt.Fprintf(d.out, "\nTo start the API:\n")
	fmt.Fprintf(d.out, "  docker compose up -d\n")
}
