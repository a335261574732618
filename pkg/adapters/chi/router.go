package chi

import (
	"net/http"

	chibase "github.com/go-chi/chi/v5"

	"github.com/gork-labs/endpoints/pkg/api"
)

// Router mounts endpoint routes on a chi.Mux so that generators can register
// against it through api.RouteRegistry.
type Router struct {
	mux      *chibase.Mux
	registry *api.RouteTable
	mounts   *api.Mounts
	prefix   string
}

// NewRouter returns a new chi router wrapper. If mux is nil a new one is
// created.
func NewRouter(mux *chibase.Mux) *Router {
	if mux == nil {
		mux = chibase.NewRouter()
	}
	return &Router{
		mux:      mux,
		registry: api.NewRouteTable(),
		mounts:   api.NewMounts(),
	}
}

// Group creates a sub-router with a path prefix that shares the same registry.
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
	path := r.prefix + route.FullPath()

	if h, mount := r.mounts.Handler(method+" "+path, route); mount {
		r.mux.Method(method, path, withURLParams(h))
	}
	route.Method = method
	route.Prefix = r.prefix
	return r.registry.RegisterRoute(route)
}

// GetRegistry exposes the shared registry instance.
func (r *Router) GetRegistry() *api.RouteTable { return r.registry }

// Unwrap returns the underlying chi.Mux instance.
func (r *Router) Unwrap() *chibase.Mux {
	return r.mux
}

// ServeHTTP makes the router usable as the server handler directly.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// withURLParams exposes chi URL parameters through Request.PathValue.
func withURLParams(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if rctx := chibase.RouteContext(req.Context()); rctx != nil {
			for i, k := range rctx.URLParams.Keys {
				if i < len(rctx.URLParams.Values) {
					req.SetPathValue(k, rctx.URLParams.Values[i])
				}
			}
		}
		h.ServeHTTP(w, req)
	})
}
