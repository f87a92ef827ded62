package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaigemini/dockling/internal/engine"
	"github.com/gaigemini/dockling/internal/registry"
)

// CheckOptions holds options for the check command
type CheckOptions struct {
	*GlobalOptions
}

// NewCheckCommand creates the check command.
//
// The check command runs the environment probes a deployment depends on and
// reports their results without building or pushing anything:
//   - container engine reachability (required)
//   - GPU runtime support (advisory)
//   - registry reachability (required)
//
// Usage:
//
//	dockling check
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for checking the environment
func NewCheckCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &CheckOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the deployment environment",
		Long: `Check that the environment can run a deployment.

All probes run even when an earlier one fails, so a single invocation gives
the complete picture. The command exits non-zero when a required probe
(engine or registry) fails; a missing GPU runtime is reported as a warning
only, matching deploy behavior.`,
		Example: `  dockling check`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts)
		},
	}

	return cmd
}

// runCheck executes the check command logic.
//
// Parameters:
//   - opts: Check command options
//
// Returns:
//   - nil when all required probes pass
//   - error naming the first failed required probe otherwise
func runCheck(opts *CheckOptions) error {
	cfg, err := loadConfig(opts.GlobalOptions)
	if err != nil {
		return err
	}

	ctx := cmdContext()
	failed := 0

	eng, err := engine.New()
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.Ping(ctx); err != nil {
		fmt.Printf("✗ container engine: %v\n", err)
		failed++
	} else {
		fmt.Println("✓ container engine reachable")

		// The GPU probe needs a working engine; skip it otherwise.
		if err := eng.ProbeGPU(ctx, cfg.Build.GPUProbeImage); err != nil {
			fmt.Printf("⚠ GPU runtime unavailable: %v\n", err)
		} else {
			fmt.Println("✓ GPU runtime available")
		}
	}

	reg := registry.NewClient(cfg.Registry.Host, cfg.Registry.Repository)
	if err := reg.Ping(ctx); err != nil {
		fmt.Printf("✗ registry: %v\n", err)
		failed++
	} else {
		fmt.Printf("✓ registry %s reachable\n", cfg.Registry.Host)
	}

	if failed > 0 {
		return fmt.Errorf("%d required check(s) failed", failed)
	}

	fmt.Println("\nEnvironment is ready for deployment.")
	return nil
}
