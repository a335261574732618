// Package bindlint checks the handler bindings in controller init functions.
//
// Controllers bind their methods explicitly:
//
//	api.DefaultHandlers.BindCallback(api.Reference{Class: "acme.Orders", Method: "getOrders"}, c.getOrders)
//
// Renaming a method without updating the reference string compiles fine but
// leaves the route unbound at registration time. The analyzer reports such
// drift along with references that break the naming convention.
package bindlint

import (
	"go/ast"
	"go/token"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer is the binding linter.
var Analyzer = &analysis.Analyzer{
	Name: "bindlint",
	Doc:  "checks that handler references name the method they are bound to",
	Run:  run,
}

const permissionsMethod = "permissions"

var callbackPattern = regexp.MustCompile(`^(get|head|post|put|patch|delete|options)([^a-z]|$)`)

// binding is one BindCallback or BindPermission call.
type binding struct {
	call       *ast.CallExpr
	permission bool
	class      string
	classPos   token.Pos
	method     string
	methodPos  token.Pos
	bound      string
}

func run(pass *analysis.Pass) (interface{}, error) {
	seen := map[string]bool{}
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if b, ok := parseBinding(call); ok {
				checkBinding(pass, b, seen)
			}
			return true
		})
	}
	return nil, nil
}

func parseBinding(call *ast.CallExpr) (binding, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || len(call.Args) != 2 {
		return binding{}, false
	}
	b := binding{call: call}
	switch sel.Sel.Name {
	case "BindCallback":
	case "BindPermission":
		b.permission = true
	default:
		return binding{}, false
	}

	lit, ok := call.Args[0].(*ast.CompositeLit)
	if !ok || !isReferenceType(lit.Type) {
		return binding{}, false
	}
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			continue
		}
		value, ok := stringLit(kv.Value)
		if !ok {
			continue
		}
		switch key.Name {
		case "Class":
			b.class, b.classPos = value, kv.Value.Pos()
		case "Method":
			b.method, b.methodPos = value, kv.Value.Pos()
		}
	}

	if fn, ok := call.Args[1].(*ast.SelectorExpr); ok {
		b.bound = fn.Sel.Name
	}
	return b, b.methodPos.IsValid()
}

func isReferenceType(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name == "Reference"
	case *ast.SelectorExpr:
		return t.Sel.Name == "Reference"
	}
	return false
}

func stringLit(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	return s, err == nil
}

func checkBinding(pass *analysis.Pass, b binding, seen map[string]bool) {
	if b.bound != "" && b.bound != b.method {
		pass.Reportf(b.call.Args[1].Pos(), "reference method %q is bound to %s", b.method, b.bound)
	}

	if b.permission {
		if b.method != permissionsMethod {
			pass.Reportf(b.methodPos, "permission reference must name %q, got %q", permissionsMethod, b.method)
		}
	} else if !callbackPattern.MatchString(b.method) {
		pass.Reportf(b.methodPos, "callback %q does not start with a lower-case HTTP method", b.method)
	}

	if b.classPos.IsValid() && !strings.Contains(b.class, ".") {
		pass.Reportf(b.classPos, "class %q is not namespace-qualified", b.class)
	}

	key := b.class + "::" + b.method
	if seen[key] {
		pass.Reportf(b.call.Pos(), "%s is bound more than once", key)
	}
	seen[key] = true
}
