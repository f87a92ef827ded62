package app

import (
	"github.com/spf13/cobra"

	"github.com/gaigemini/dockling/internal/deploy"
	"github.com/gaigemini/dockling/internal/engine"
)

// BuildOptions holds options for the build command
type BuildOptions struct {
	*GlobalOptions

	// Version is the image version tag (defaults to "latest")
	Version string
}

// NewBuildCommand creates the build command.
//
// The build command runs only the build stage of the deployment sequence:
// engine check, GPU runtime probe, image build and the conditional latest
// alias. Nothing is pushed and no credentials are needed.
//
// Usage:
//
//	dockling build [VERSION]
//
// Examples:
//
//	dockling build
//	dockling build 1.2.3
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for building the image
func NewBuildCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &BuildOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "build [VERSION]",
		Short: "Build the API image without pushing",
		Long: `Build the Docling API image locally.

The optional VERSION argument tags the image; it defaults to "latest". When
a specific version is given, the built image is additionally tagged as
"latest". The registry is not contacted; use 'dockling push' or
'dockling deploy' to publish.`,
		Example: `  # Build the latest tag
  dockling build

  # Build 1.2.3 and tag the latest alias
  dockling build 1.2.3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Version = args[0]
			}
			return runBuild(opts)
		},
	}

	return cmd
}

// runBuild executes the build command logic.
//
// Parameters:
//   - opts: Build command options
//
// Returns:
//   - nil on success
//   - error if the engine is unreachable or the build fails
func runBuild(opts *BuildOptions) error {
	cfg, err := loadConfig(opts.GlobalOptions)
	if err != nil {
		return err
	}

	eng, err := engine.New()
	if err != nil {
		return err
	}
	defer eng.Close()

	deployer := deploy.New(eng, cfg, nil)
	_, err = deployer.Run(cmdContext(), deploy.Options{
		Version:  opts.Version,
		SkipPush: true,
	})
	return err
}
