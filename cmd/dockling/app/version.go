package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaigemini/dockling/internal/config"
)

// NewVersionCommand creates the version command.
//
// The version command displays build information for the dockling binary.
//
// Usage:
//
//	dockling version
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for displaying version info
func NewVersionCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Display version information",
		Long:    `Display the dockling client version, build time and git commit.`,
		Example: `  dockling version`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Client Version:")
			fmt.Printf("  Version:    %s\n", config.Version)
			fmt.Printf("  Build Time: %s\n", config.BuildTime)
			fmt.Printf("  Git Commit: %s\n", config.GitCommit)
			return nil
		},
	}

	return cmd
}
