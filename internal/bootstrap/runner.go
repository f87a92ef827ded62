package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands for the bootstrap sequence, streaming
// their output to the host terminal.
type Runner struct {
	// Dir is the working directory commands run in.
	Dir string

	// Env is appended to the inherited process environment.
	Env []string

	// DryRun prints each command instead of executing it.
	DryRun bool

	// Echo prints each command before executing it.
	Echo bool

	// ran records the commands executed (or printed in dry-run mode),
	// in order. Used by tests.
	ran []string
}

// Run executes name with args, wiring stdin/stdout/stderr to the host so
// interactive tools (pip progress bars, uvicorn output) behave normally.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	r.ran = append(r.ran, cmdline)

	if r.DryRun {
		fmt.Fprintf(os.Stderr, "+ %s\n", cmdline)
		return nil
	}
	if r.Echo {
		fmt.Fprintf(os.Stderr, "+ %s\n", cmdline)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), r.Env...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// Commands returns the commands run so far, in order.
func (r *Runner) Commands() []string {
	return r.ran
}
