package api

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/tools/imports"
)

// ImportPath is the import path generated controllers use to reach this
// package.
const ImportPath = "github.com/gork-labs/endpoints/pkg/api"

// ScaffoldExt is the extension of generated controller files.
const ScaffoldExt = ".go"

const scaffoldTemplate = `// Code generated by endpoints scaffold. This file is created once and never
// overwritten: fill in the handlers below.

package {{.Package}}

import (
	"net/http"

	{{.Alias}} "{{.Import}}"
)

// {{.Class}} is the controller class for callbacks and permissions.
// Route --> {{.QualifiedClass}} ({{.RouteNamespace}}/{{.Endpoint}})
//
// Since {{.Version}}.
type {{.Class}} struct{}

func init() {
	c := {{.Class}}{}
{{- range .Methods}}
	{{$.Alias}}.DefaultHandlers.BindCallback({{$.Alias}}.Reference{Class: {{printf "%q" $.QualifiedClass}}, Method: {{printf "%q" .Name}}}, c.{{.Name}})
{{- end}}
	{{.Alias}}.DefaultHandlers.BindPermission({{.Alias}}.Reference{Class: {{printf "%q" .QualifiedClass}}, Method: {{printf "%q" .Permission}}}, c.{{.Permission}})
}
{{range .Methods}}
// {{.Name}} handles {{.HTTP}} requests to the endpoint.
//
// Since {{$.Version}}.
func ({{$.Class}}) {{.Name}}(r *http.Request) (*{{$.Alias}}.Response, error) {
	return {{$.Alias}}.NewResponse(http.StatusOK, nil), nil
}
{{end}}
// {{.Permission}} authenticates or limits requests to the endpoint.
func ({{.Class}}) {{.Permission}}(r *http.Request) bool {
	// Your conditions.
	return true
}
`

var scaffoldTmpl = template.Must(template.New("scaffold").Parse(scaffoldTemplate))

type scaffoldMethod struct {
	HTTP string
	Name string
}

type scaffoldData struct {
	Package        string
	Alias          string
	Import         string
	Class          string
	QualifiedClass string
	RouteNamespace string
	Endpoint       string
	Version        string
	Permission     string
	Methods        []scaffoldMethod
}

// renderScaffold executes the controller template and runs the result
// through goimports formatting. filename is only used for diagnostics.
func renderScaffold(filename string, data scaffoldData) ([]byte, error) {
	if data.Alias == "" {
		data.Alias = "api"
		if data.Package == "api" {
			data.Alias = "endpointsapi"
		}
	}
	if data.Import == "" {
		data.Import = ImportPath
	}
	if data.Permission == "" {
		data.Permission = PermissionsMethod
	}

	var buf bytes.Buffer
	if err := scaffoldTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute scaffold template: %w", err)
	}

	formatted, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format scaffold: %w", err)
	}
	return formatted, nil
}
