package stdlib

import (
	"net/http"
	"strings"

	"github.com/gork-labs/endpoints/pkg/api"
)

// Router mounts endpoint routes on an *http.ServeMux.
//
// Groups are emulated by keeping track of a path prefix – Go's standard library
// router does not have a native grouping facility.
type Router struct {
	mux      *http.ServeMux
	registry *api.RouteTable
	mounts   *api.Mounts
	prefix   string
}

// NewRouter creates a new wrapper around the provided *http.ServeMux. If mux is
// nil, a fresh instance is allocated.
func NewRouter(mux *http.ServeMux) *Router {
	if mux == nil {
		mux = http.NewServeMux()
	}
	return &Router{
		mux:      mux,
		registry: api.NewRouteTable(),
		mounts:   api.NewMounts(),
	}
}

// Group creates a sub-router that shares the same mux and registry and mounts
// every route under prefix.
func (r *Router) Group(prefix string) *Router {
	return &Router{
		mux:      r.mux,
		registry: r.registry,
		mounts:   r.mounts,
		prefix:   r.prefix + prefix,
	}
}

// RegisterRoute implements api.RouteRegistry.
func (r *Router) RegisterRoute(route api.Route) error {
	method, err := api.NormalizeMethod(route.Method)
	if err != nil {
		return err
	}
	path := toNativePath(r.prefix + route.FullPath())

	pattern := method + " " + path
	if h, mount := r.mounts.Handler(pattern, route); mount {
		r.mux.Handle(pattern, h)
	}
	route.Method = method
	route.Prefix = r.prefix
	return r.registry.RegisterRoute(route)
}

// GetRegistry returns the shared registry instance.
func (r *Router) GetRegistry() *api.RouteTable { return r.registry }

// Unwrap returns the underlying *http.ServeMux.
func (r *Router) Unwrap() *http.ServeMux { return r.mux }

// ServeHTTP makes the router usable as the server handler directly.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// toNativePath converts a trailing "/*" wildcard into the rest-of-path capture
// segment "{rest...}" understood by ServeMux (Go 1.22+). All other paths are
// returned unchanged because ServeMux already understands `{param}` style
// placeholders.
func toNativePath(p string) string {
	if strings.HasSuffix(p, "/*") {
		return strings.TrimSuffix(p, "/*") + "/{rest...}"
	}
	return p
}
