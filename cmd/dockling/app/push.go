package app

import (
	"github.com/spf13/cobra"

	"github.com/gaigemini/dockling/internal/deploy"
	"github.com/gaigemini/dockling/internal/engine"
)

// PushOptions holds options for the push command
type PushOptions struct {
	*GlobalOptions

	// Version is the image version tag (defaults to "latest")
	Version string

	// Username is the registry username (prompted for when empty)
	Username string

	// Password is the registry password (prompted for when empty)
	Password string
}

// NewPushCommand creates the push command.
//
// The push command publishes an already-built image: engine check, registry
// login, push of the version tag and of the latest alias when the version
// is not "latest". The image must exist locally, typically from a prior
// 'dockling build'.
//
// Usage:
//
//	dockling push [VERSION]
//
// Examples:
//
//	dockling push
//	dockling push 1.2.3
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for pushing the image
func NewPushCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &PushOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "push [VERSION]",
		Short: "Push a previously built API image",
		Long: `Push an already-built Docling API image to the registry.

The optional VERSION argument selects the local tag to push; it defaults to
"latest". When a specific version is given, the latest alias is re-tagged to
the selected version and pushed as well. The registry overwrites existing
tags, so re-pushing the same version is not prevented.`,
		Example: `  # Push the latest tag
  dockling push

  # Push 1.2.3 plus the latest alias
  dockling push 1.2.3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Version = args[0]
			}
			return runPush(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "",
		"registry username (prompted for when omitted)")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "",
		"registry password (prompted for without echo when omitted)")

	return cmd
}

// runPush executes the push command logic.
//
// Parameters:
//   - opts: Push command options
//
// Returns:
//   - nil on success
//   - error if the engine is unreachable, login fails, or a push fails
func runPush(opts *PushOptions) error {
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
		SkipBuild:   true,
	})
	return err
}
