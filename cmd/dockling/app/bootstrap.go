package app

import (
	"github.com/spf13/cobra"

	"github.com/gaigemini/dockling/internal/bootstrap"
	"github.com/gaigemini/dockling/internal/config"
)

// BootstrapOptions holds options for the bootstrap command
type BootstrapOptions struct {
	*GlobalOptions

	// Dir is the project directory to bootstrap
	Dir string

	// Port overrides the server port
	Port int

	// DryRun prints the commands without executing them
	DryRun bool
}

// NewBootstrapCommand creates the bootstrap command.
//
// The bootstrap command prepares a local Python environment for the API and
// starts the server directly, without any container: it creates a
// virtualenv if needed, installs the declared dependencies, ensures the
// upload directory exists, and launches uvicorn. With a debug profile
// (dev/test) the server runs in auto-reload mode.
//
// Usage:
//
//	dockling bootstrap [--dir DIR] [--port PORT] [--dry-run]
//
// Examples:
//
//	dockling bootstrap
//	dockling bootstrap --dir ~/src/docling-api --port 8080
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for bootstrapping the local environment
func NewBootstrapCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &BootstrapOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Prepare and run the API locally",
		Long: `Prepare an isolated local environment and run the API directly.

The environment profile comes from APP_ENV (dev, test or prod; default dev),
optionally set through a .env file in the project directory. Profile
settings may be overridden by an env/<profile>.env file. This command blocks
until the server exits.

Re-running is best-effort idempotent: an existing virtualenv is reused and
dependencies are re-installed.`,
		Example: `  # Bootstrap the current directory and start the server
  dockling bootstrap

  # See what would be run without executing anything
  dockling bootstrap --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "",
		"project directory (default: current directory)")
	cmd.Flags().IntVar(&opts.Port, "port", 0,
		"server port (default: 8000)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false,
		"print the commands without executing them")

	return cmd
}

// runBootstrap executes the bootstrap command logic.
//
// Parameters:
//   - opts: Bootstrap command options
//
// Returns:
//   - nil when the server exits cleanly
//   - error if any preparation step or the server launch fails
func runBootstrap(opts *BootstrapOptions) error {
	cfg, err := loadConfig(opts.GlobalOptions)
	if err != nil {
		return err
	}

	if opts.Dir != "" {
		cfg.Bootstrap.Dir = opts.Dir
	}
	if opts.Port != 0 {
		cfg.Bootstrap.Port = opts.Port
	}

	env, err := config.LoadEnv(cfg.Bootstrap.Dir)
	if err != nil {
		return err
	}

	runner := &bootstrap.Runner{
		Dir:    cfg.Bootstrap.Dir,
		DryRun: opts.DryRun,
		Echo:   opts.Verbose,
	}

	return bootstrap.New(cfg.Bootstrap, env, runner).Run(cmdContext())
}
