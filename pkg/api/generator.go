package api

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Generator registers one endpoint with a host router and scaffolds its
// controller file.
//
// The endpoint descriptor (name, methods) is fixed at construction. Config
// values are read each time Register or GenerateScaffold runs.
type Generator struct {
	endpoint string
	methods  []string
	config   *Config
	args     map[string]ArgSchema
	resolver ClassResolver
	logger   *zap.Logger
	fs       afero.Fs
}

// GeneratorOption customises a Generator.
type GeneratorOption func(*Generator)

// WithArgs sets the per-method argument schemas. The map is copied.
func WithArgs(args map[string]ArgSchema) GeneratorOption {
	return func(g *Generator) {
		for method, schema := range args {
			g.args[method] = schema
		}
	}
}

// WithMethodArgs pairs schemas with the endpoint's methods by position. Extra
// schemas or methods on either side are ignored.
func WithMethodArgs(schemas ...ArgSchema) GeneratorOption {
	return func(g *Generator) {
		n := len(schemas)
		if len(g.methods) < n {
			n = len(g.methods)
		}
		for i := 0; i < n; i++ {
			g.args[g.methods[i]] = schemas[i]
		}
	}
}

// WithResolver sets the resolver used to bind references to handlers. A nil
// resolver registers routes with references only.
func WithResolver(resolver ClassResolver) GeneratorOption {
	return func(g *Generator) { g.resolver = resolver }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithFs sets the filesystem scaffolds are written to. Defaults to the OS
// filesystem.
func WithFs(fs afero.Fs) GeneratorOption {
	return func(g *Generator) {
		if fs != nil {
			g.fs = fs
		}
	}
}

// NewGenerator declares an endpoint. methods keeps its order and duplicates.
func NewGenerator(endpoint string, methods []string, cfg *Config, opts ...GeneratorOption) (*Generator, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("%w: endpoint name is empty", ErrInvalidEndpoint)
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMethods, endpoint)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfig)
	}

	g := &Generator{
		endpoint: endpoint,
		methods:  append([]string(nil), methods...),
		config:   cfg,
		args:     make(map[string]ArgSchema),
		resolver: DefaultHandlers,
		logger:   zap.NewNop(),
		fs:       afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Endpoint returns the endpoint path segment.
func (g *Generator) Endpoint() string { return g.endpoint }

// Methods returns a copy of the declared HTTP methods.
func (g *Generator) Methods() []string { return append([]string(nil), g.methods...) }

// Config returns the configuration the generator reads from.
func (g *Generator) Config() *Config { return g.config }

// RouteNamespace returns "<namespace>/<version>".
func (g *Generator) RouteNamespace() string {
	return RouteNamespace(g.config.Namespace(), g.config.Version())
}

// CallbackReference returns the callback reference for method.
func (g *Generator) CallbackReference(method string) Reference {
	return Reference{
		Class:  ClassName(g.config.Namespace(), g.endpoint),
		Method: CallbackName(method, g.endpoint),
	}
}

// PermissionReference returns the permission callback reference shared by
// all methods of the endpoint.
func (g *Generator) PermissionReference() Reference {
	return Reference{
		Class:  ClassName(g.config.Namespace(), g.endpoint),
		Method: PermissionsMethod,
	}
}

// ScaffoldPath returns the controller file path for the endpoint.
func (g *Generator) ScaffoldPath() string {
	return filepath.Join(g.config.Path(), Capitalize(g.endpoint)+ScaffoldExt)
}

// ArgSchema returns the schema registered for method, or nil.
func (g *Generator) ArgSchema(method string) ArgSchema {
	return g.args[method]
}

// AddArgSchema sets the schema for method, replacing any earlier one.
func (g *Generator) AddArgSchema(method string, schema ArgSchema) {
	g.args[method] = schema
}

// Routes derives the routes Register would hand to the host, without
// resolving handlers.
func (g *Generator) Routes() []Route {
	ns := g.RouteNamespace()
	perm := g.PermissionReference()
	routes := make([]Route, 0, len(g.methods))
	for _, method := range g.methods {
		routes = append(routes, Route{
			Namespace:  ns,
			Path:       g.endpoint,
			Method:     method,
			Callback:   g.CallbackReference(method),
			Permission: perm,
			Args:       g.ArgSchema(method),
		})
	}
	return routes
}

// Register hands one route per declared method to registry, in declaration
// order. The first error stops registration and is returned; nothing is
// retried.
func (g *Generator) Register(registry RouteRegistry) error {
	if registry == nil {
		return errors.New("api: nil route registry")
	}
	if err := g.config.ValidateRoutes(); err != nil {
		return err
	}

	routes := g.Routes()
	for i := range routes {
		if err := routes[i].Args.Check(); err != nil {
			return fmt.Errorf("%w: %s %s: %w", ErrConfig, routes[i].Method, g.endpoint, err)
		}
		if err := g.resolve(&routes[i]); err != nil {
			return err
		}
	}

	for _, route := range routes {
		if err := registry.RegisterRoute(route); err != nil {
			return fmt.Errorf("register %s %s: %w", route.Method, route.FullPath(), err)
		}
		g.logger.Debug("route registered",
			zap.String("namespace", route.Namespace),
			zap.String("path", route.Path),
			zap.String("method", route.Method),
			zap.Stringer("callback", route.Callback),
			zap.Stringer("permission", route.Permission))
	}
	return nil
}

func (g *Generator) resolve(route *Route) error {
	if g.resolver == nil {
		return nil
	}
	handler, err := g.resolver.ResolveCallback(route.Callback)
	if err != nil {
		return err
	}
	allow, err := g.resolver.ResolvePermission(route.Permission)
	if err != nil {
		return err
	}
	route.Handler = handler
	route.Allow = allow
	return nil
}

// GenerateScaffold writes the endpoint's controller file unless it already
// exists. It reports whether a file was written. An existing file is never
// touched.
//
// The existence check and the write are not atomic with respect to other
// processes: two hosts scaffolding the same endpoint for the first time at
// once may both write it.
func (g *Generator) GenerateScaffold() (bool, error) {
	if err := g.config.Validate(); err != nil {
		return false, err
	}

	class := Capitalize(g.endpoint)
	if err := validate.Var(class, "goident"); err != nil {
		return false, fmt.Errorf("%w: %q is not a valid class name", ErrInvalidEndpoint, class)
	}

	dir := g.config.Path()
	if err := g.fs.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("%w: create %s: %w", ErrScaffoldIO, dir, err)
	}

	target := g.ScaffoldPath()
	exists, err := afero.Exists(g.fs, target)
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %w", ErrScaffoldIO, target, err)
	}
	if exists {
		g.logger.Info("scaffold exists, skipping", zap.String("endpoint", g.endpoint), zap.String("path", target))
		return false, nil
	}

	data, err := g.scaffoldData(class)
	if err != nil {
		return false, err
	}
	src, err := renderScaffold(target, data)
	if err != nil {
		return false, err
	}

	if err := writeFileAtomic(g.fs, target, src); err != nil {
		return false, fmt.Errorf("%w: write %s: %w", ErrScaffoldIO, target, err)
	}
	g.logger.Info("scaffold generated",
		zap.String("endpoint", g.endpoint),
		zap.String("class", data.QualifiedClass),
		zap.String("path", target))
	return true, nil
}

func (g *Generator) scaffoldData(class string) (scaffoldData, error) {
	data := scaffoldData{
		Package:        packageName(g.config.Namespace()),
		Class:          class,
		QualifiedClass: ClassName(g.config.Namespace(), g.endpoint),
		RouteNamespace: g.RouteNamespace(),
		Endpoint:       g.endpoint,
		Version:        g.config.Version(),
	}

	// Duplicate methods register twice but only get one stub.
	seen := make(map[string]struct{}, len(g.methods))
	for _, method := range g.methods {
		name := CallbackName(method, g.endpoint)
		if err := validate.Var(name, "goident"); err != nil {
			return scaffoldData{}, fmt.Errorf("%w: method %q gives invalid callback name %q", ErrInvalidEndpoint, method, name)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		data.Methods = append(data.Methods, scaffoldMethod{HTTP: strings.ToUpper(method), Name: name})
	}
	return data, nil
}

// writeFileAtomic writes data to a temporary file next to target and renames
// it into place.
func writeFileAtomic(fs afero.Fs, target string, data []byte) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(name)
		return err
	}
	if err := fs.Chmod(name, 0o644); err != nil {
		_ = fs.Remove(name)
		return err
	}
	if err := fs.Rename(name, target); err != nil {
		_ = fs.Remove(name)
		return err
	}
	return nil
}
