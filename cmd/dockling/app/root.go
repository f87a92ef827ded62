// Package app provides the command-line interface implementation for
// dockling.
//
// This package contains all CLI commands and their implementations,
// following the cobra command tree pattern: a root command with one
// subcommand per file, each backed by an options struct and a run function.
package app

import (
	"github.com/spf13/cobra"

	"github.com/gaigemini/dockling/internal/config"
	"github.com/gaigemini/dockling/internal/logger"
)

const (
	// cliName is the name of the CLI application
	cliName = "dockling"

	// cliDescription is the short description shown in help text
	cliDescription = "dockling - deployment automation for the Docling document API"
)

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	// ConfigFile is an explicit config file path (default: dockling.yaml
	// in the working directory or ~/.dockling)
	ConfigFile string

	// Verbose enables verbose output
	Verbose bool
}

// NewDocklingCommand creates the root dockling command with all subcommands.
//
// The root command provides the main entry point for the CLI. It sets up
// global flags, initializes logging, and registers all subcommands.
//
// Returns:
//   - A configured cobra.Command ready for execution
//
// Example:
//
//	cmd := NewDocklingCommand()
//	if err := cmd.Execute(); err != nil {
//	    os.Exit(1)
//	}
func NewDocklingCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `dockling is a command-line tool for deploying the Docling document
processing API.

It builds the API container image, publishes it to the company registry with
proper version and latest tags, and can bootstrap a local development
environment that runs the API directly without a container.

Deployment requires a reachable Docker daemon. GPU runtime support is probed
but never required: the image builds and deploys on hosts without GPUs.`,
		SilenceUsage: true,
		// SilenceErrors is false by default - we want to show errors to users
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbose(opts.Verbose)
		},
	}

	// Add global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "",
		"config file (default: dockling.yaml in . or ~/.dockling)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"verbose output")

	// Add subcommands
	cmd.AddCommand(
		NewDeployCommand(opts),
		NewBuildCommand(opts),
		NewPushCommand(opts),
		NewCheckCommand(opts),
		NewTagsCommand(opts),
		NewBootstrapCommand(opts),
		NewVersionCommand(opts),
	)

	return cmd
}

// loadConfig resolves the configuration for a command invocation.
//
// Parameters:
//   - opts: Global options containing the config file path
//
// Returns:
//   - The resolved configuration
//   - An error if the config file cannot be read or parsed
func loadConfig(opts *GlobalOptions) (*config.Config, error) {
	return config.Load(opts.ConfigFile)
}
