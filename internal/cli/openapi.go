package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gork-labs/endpoints/internal/manifest"
	"github.com/gork-labs/endpoints/pkg/api"
)

var pathParam = regexp.MustCompile(`\{([^}/]+)\}`)

// GenerateConfig holds configuration for OpenAPI generation.
type GenerateConfig struct {
	OutputPath string
	Title      string
	Format     string
}

func newOpenAPICommand(opts *options) *cobra.Command {
	var config GenerateConfig

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Export an OpenAPI 3 document for the manifest routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, _, gens, err := opts.load()
			if err != nil {
				return err
			}
			table, err := routeTable(gens)
			if err != nil {
				return err
			}
			doc, err := buildDocument(cmd.Context(), m, config.Title, table.GetRoutes())
			if err != nil {
				return err
			}
			if config.OutputPath == "-" {
				return writeDocument(cmd.OutOrStdout(), config.Format, doc)
			}
			return writeDocumentFile(config, doc)
		},
	}

	cmd.Flags().StringVarP(&config.OutputPath, "output", "o", "openapi.json", "Path to output file or '-' for stdout")
	cmd.Flags().StringVar(&config.Title, "title", "API", "API title")
	cmd.Flags().StringVarP(&config.Format, "format", "f", "", "Output format: json or yaml (default from the output extension)")
	return cmd
}

// buildDocument describes every route as one operation. Arguments become
// query parameters and {name} path segments become path parameters.
func buildDocument(ctx context.Context, m *manifest.Manifest, title string, routes []api.Route) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: m.APIVersion},
		Paths:   openapi3.NewPaths(),
	}

	for _, route := range routes {
		path := route.FullPath()
		item := doc.Paths.Value(path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(path, item)
		}
		item.SetOperation(strings.ToUpper(route.Method), operation(route))
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi document: %w", err)
	}
	return doc, nil
}

func operation(route api.Route) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = route.Callback.Method
	op.Tags = []string{route.Callback.Class}
	op.Summary = route.Callback.String()

	for _, match := range pathParam.FindAllStringSubmatch(route.Path, -1) {
		op.AddParameter(openapi3.NewPathParameter(match[1]).WithSchema(openapi3.NewStringSchema()))
	}
	for _, name := range route.Args.Names() {
		spec := route.Args[name]
		op.AddParameter(openapi3.NewQueryParameter(name).
			WithDescription(spec.Description).
			WithRequired(spec.Required).
			WithSchema(argSchema(spec)))
	}

	responses := []openapi3.NewResponsesOption{
		openapi3.WithStatus(http.StatusOK, response("Success")),
		openapi3.WithStatus(http.StatusForbidden, response("Permission callback denied the request")),
	}
	if len(route.Args) > 0 {
		responses = append(responses, openapi3.WithStatus(http.StatusBadRequest, response("Argument validation failed")))
	}
	op.Responses = openapi3.NewResponses(responses...)
	return op
}

func response(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description)}
}

func argSchema(spec api.ArgSpec) *openapi3.Schema {
	var s *openapi3.Schema
	switch spec.Type {
	case "integer":
		s = openapi3.NewIntegerSchema()
	case "number":
		s = openapi3.NewFloat64Schema()
	case "boolean":
		s = openapi3.NewBoolSchema()
	case "array":
		s = openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	case "object":
		s = openapi3.NewObjectSchema()
	default:
		s = openapi3.NewStringSchema()
	}
	for _, v := range spec.Enum {
		s.Enum = append(s.Enum, v)
	}
	if spec.Default != nil {
		s.Default = spec.Default
	}
	return s
}

func writeDocumentFile(config GenerateConfig, doc *openapi3.T) error {
	format := config.Format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(config.OutputPath), ".")
	}

	// Render first so a bad format leaves an existing file untouched.
	var buf bytes.Buffer
	if err := writeDocument(&buf, format, doc); err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(config.OutputPath), buf.Bytes(), 0o644)
}

func writeDocument(w io.Writer, format string, doc *openapi3.T) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
