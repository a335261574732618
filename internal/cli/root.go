// Package cli provides the endpoints command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gork-labs/endpoints/internal/manifest"
	"github.com/gork-labs/endpoints/pkg/api"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// options are shared by every subcommand.
type options struct {
	configPath string
	verbose    bool
	logger     *zap.Logger
}

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "endpoints",
		Short:         "Declare, register and scaffold REST endpoints",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to the manifest (default "+manifest.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every registration step")

	rootCmd.AddCommand(
		newScaffoldCommand(opts),
		newRoutesCommand(opts),
		newOpenAPICommand(opts),
		newVersionCommand(),
	)
	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// load reads the manifest and declares its generators. Routes are registered
// with references only; the CLI never runs endpoint code.
func (o *options) load() (*manifest.Manifest, *api.Config, []*api.Generator, error) {
	m, err := manifest.Load(o.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg := m.Config()
	gens, err := m.Generators(cfg, api.WithResolver(nil), api.WithLogger(o.logger))
	if err != nil {
		return nil, nil, nil, err
	}
	return m, cfg, gens, nil
}

// routeTable registers every generator into a fresh table.
func routeTable(gens []*api.Generator) (*api.RouteTable, error) {
	table := api.NewRouteTable()
	for _, g := range gens {
		if err := g.Register(table); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "endpoints %s\n", Version)
		},
	}
}
