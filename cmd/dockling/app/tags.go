package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gaigemini/dockling/internal/image"
	"github.com/gaigemini/dockling/internal/registry"
)

// TagsOptions holds options for the tags command
type TagsOptions struct {
	*GlobalOptions
}

// NewTagsCommand creates the tags command.
//
// The tags command lists every tag currently published for the configured
// repository by querying the registry directly, without going through the
// engine daemon.
//
// Usage:
//
//	dockling tags
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for listing published tags
func NewTagsCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &TagsOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List published image tags",
		Long: `List the tags published for the API image repository.

The registry is queried directly; credentials from ~/.docker/config.json
are used when the registry requires authentication.`,
		Example: `  dockling tags`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(opts)
		},
	}

	return cmd
}

// runTags executes the tags command logic.
//
// Parameters:
//   - opts: Tags command options
//
// Returns:
//   - nil on success
//   - error if the registry query fails
func runTags(opts *TagsOptions) error {
	cfg, err := loadConfig(opts.GlobalOptions)
	if err != nil {
		return err
	}

	reg := registry.NewClient(cfg.Registry.Host, cfg.Registry.Repository)
	tags, err := reg.ListTags(cmdContext())
	if err != nil {
		return err
	}

	if len(tags) == 0 {
		fmt.Printf("No tags published for %s/%s yet.\n", cfg.Registry.Host, cfg.Registry.Repository)
		fmt.Println("\nTo publish one, run: dockling deploy")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tREFERENCE")
	fmt.Fprintln(w, "---\t---------")
	for _, tag := range tags {
		ref := image.NewReference(cfg.Registry.Host, cfg.Registry.Repository, tag)
		fmt.Fprintf(w, "%s\t%s\n", tag, ref)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d tag(s)\n", len(tags))
	return nil
}
