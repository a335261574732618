package gorilla

import (
	"net/http"
	"strings"

	muxpkg "github.com/gorilla/mux"

	"github.com/gork-labs/endpoints/pkg/api"
)

// Router wraps gorilla/mux Router.
type Router struct {
	router   *muxpkg.Router
	registry *api.RouteTable
	mounts   *api.Mounts
	prefix   string
}

// NewRouter wraps r, or a new mux.Router when r is nil.
func NewRouter(r *muxpkg.Router) *Router {
	if r == nil {
		r = muxpkg.NewRouter()
	}
	return &Router{
		router:   r,
		registry: api.NewRouteTable(),
		mounts:   api.NewMounts(),
	}
}

// Group mounts a PathPrefix subrouter sharing the registry.
func (wr *Router) Group(prefix string) *Router {
	return &Router{
		router:   wr.router.PathPrefix(prefix).Subrouter(),
		registry: wr.registry,
		mounts:   wr.mounts,
		prefix:   wr.prefix + prefix,
	}
}

// RegisterRoute implements api.RouteRegistry.
func (wr *Router) RegisterRoute(route api.Route) error {
	method, err := api.NormalizeMethod(route.Method)
	if err != nil {
		return err
	}
	path := toNativePath(route.FullPath())

	if h, mount := wr.mounts.Handler(method+" "+wr.prefix+path, route); mount {
		wr.router.Path(path).Methods(method).Handler(withVars(h))
	}
	route.Method = method
	route.Prefix = wr.prefix
	return wr.registry.RegisterRoute(route)
}

// GetRegistry returns the registry shared with every subrouter.
func (wr *Router) GetRegistry() *api.RouteTable { return wr.registry }

// Unwrap returns the underlying mux.Router (the subrouter for groups).
func (wr *Router) Unwrap() *muxpkg.Router { return wr.router }

// ServeHTTP serves requests through the wrapped mux.Router.
func (wr *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	wr.router.ServeHTTP(w, req)
}

// withVars copies mux variables onto the request path values.
func withVars(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		for k, v := range muxpkg.Vars(req) {
			req.SetPathValue(k, v)
		}
		h.ServeHTTP(w, req)
	})
}

// toNativePath turns a trailing "/*" into a regexp variable gorilla can match.
func toNativePath(p string) string {
	if strings.HasSuffix(p, "/*") {
		return strings.TrimSuffix(p, "/*") + "/{rest:.*}"
	}
	return p
}
