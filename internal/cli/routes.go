package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bndr/gotabulate"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gork-labs/endpoints/pkg/api"
)

// routeView is the printable form of a registered route.
type routeView struct {
	Method     string   `json:"method" yaml:"method"`
	Path       string   `json:"path" yaml:"path"`
	Callback   string   `json:"callback" yaml:"callback"`
	Permission string   `json:"permission" yaml:"permission"`
	Args       []string `json:"args,omitempty" yaml:"args,omitempty"`
}

func newRoutesCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes the manifest registers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, gens, err := opts.load()
			if err != nil {
				return err
			}
			table, err := routeTable(gens)
			if err != nil {
				return err
			}
			return writeRoutes(cmd.OutOrStdout(), format, table.GetRoutes())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	return cmd
}

func views(routes []api.Route) []routeView {
	out := make([]routeView, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeView{
			Method:     strings.ToUpper(r.Method),
			Path:       r.FullPath(),
			Callback:   r.Callback.String(),
			Permission: r.Permission.String(),
			Args:       r.Args.Names(),
		})
	}
	return out
}

func writeRoutes(w io.Writer, format string, routes []api.Route) error {
	rows := views(routes)
	switch format {
	case "table":
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "no routes")
			return err
		}
		cells := make([][]any, 0, len(rows))
		for _, r := range rows {
			cells = append(cells, []any{r.Method, r.Path, r.Callback, r.Permission, strings.Join(r.Args, ", ")})
		}
		t := gotabulate.Create(cells)
		t.SetHeaders([]string{"METHOD", "PATH", "CALLBACK", "PERMISSION", "ARGS"})
		t.SetAlign("left")
		t.SetEmptyString("-")
		_, err := fmt.Fprint(w, t.Render("grid"))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
