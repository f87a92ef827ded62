package app

import (
	"github.com/spf13/cobra"

	"github.com/gaigemini/dockling/internal/deploy"
	"github.com/gaigemini/dockling/internal/engine"
)

// DeployOptions holds options for the deploy command
type DeployOptions struct {
	*GlobalOptions

	// Version is the image version tag (defaults to "latest")
	Version string

	// Username is the registry username (prompted for when empty)
	Username string

	// Password is the registry password (prompted for when empty)
	Password string
}

// NewDeployCommand creates the deploy command.
//
// The deploy command runs the full deployment sequence: engine check, GPU
// runtime probe, image build, conditional latest alias, registry login and
// push of every created tag.
//
// Usage:
//
//	dockling deploy [VERSION]
//
// Examples:
//
//	dockling deploy
//	dockling deploy 1.2.3
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for deploying the image
func NewDeployCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &DeployOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "deploy [VERSION]",
		Short: "Build and push the API image",
		Long: `Build the Docling API image and push it to the registry.

The optional VERSION argument tags the image; it defaults to "latest". When
a specific version is given, the same image content is additionally tagged
and pushed as "latest".

The sequence is fail-fast: the first failing step aborts the deployment.
A missing GPU runtime only produces a warning; the image builds without GPU
support and GPU availability remains a runtime concern of the target host.`,
		Example: `  # Build and push the latest tag
  dockling deploy

  # Build and push 1.2.3 plus the latest alias
  dockling deploy 1.2.3

  # Non-interactive push
  dockling deploy 1.2.3 --username ci-bot --password "$REGISTRY_TOKEN"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Version = args[0]
			}
			return runDeploy(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "",
		"registry username (prompted for when omitted)")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "",
		"registry password (prompted for without echo when omitted)")

	return cmd
}

// runDeploy executes the deploy command logic.
//
// Parameters:
//   - opts: Deploy command options
//
// Returns:
//   - nil on success
//   - error if any fatal step of the sequence fails
func runDeploy(opts *DeployOptions) error {
	cfg, err := loadConfig(opts.GlobalOptions)
	if err != nil {
		return err
	}

	creds, err := resolveCredentials(cfg, opts.Username, opts.Password)
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
		Version:     opts.Version,
		Credentials: creds,
	})
	return err
}
