package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gork-labs/endpoints/internal/manifest"
)

func newScaffoldCommand(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Generate controller stubs for every manifest endpoint",
		Long: `Generate one controller file per endpoint declared in the manifest.

Existing files are never overwritten, so the command can be re-run after
adding endpoints.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, gens, err := opts.load()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.SetPath(output)
			}

			out := cmd.OutOrStdout()
			for _, g := range gens {
				created, err := g.GenerateScaffold()
				if err != nil {
					return err
				}
				status := "skipped"
				if created {
					status = "created"
				}
				fmt.Fprintf(out, "%-8s %s\n", status, g.ScaffoldPath())
			}

			path, ok, err := manifest.ImportPath(cfg.Path())
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(out, "\nBlank-import the controllers to bind their handlers:\n\n\timport _ %q\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory to write controllers to (overrides output_path)")
	return cmd
}
