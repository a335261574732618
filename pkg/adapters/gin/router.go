package gin

import (
	"net/http"
	"strings"

	ginpkg "github.com/gin-gonic/gin"

	"github.com/gork-labs/endpoints/pkg/api"
)

// Router wraps gin Engine or RouterGroup.
type Router struct {
	engine   *ginpkg.Engine
	group    *ginpkg.RouterGroup
	registry *api.RouteTable
	mounts   *api.Mounts
	prefix   string
}

// NewRouter creates a new router around the given Gin engine.
func NewRouter(e *ginpkg.Engine) *Router {
	if e == nil {
		e = ginpkg.New()
	}
	return &Router{
		engine:   e,
		group:    &e.RouterGroup,
		registry: api.NewRouteTable(),
		mounts:   api.NewMounts(),
	}
}

// Group creates a sub-router with prefix sharing the same registry.
func (r *Router) Group(prefix string) *Router {
	return &Router{
		engine:   r.engine,
		group:    r.group.Group(prefix),
		registry: r.registry,
		mounts:   r.mounts,
		prefix:   r.prefix + prefix,
	}
}

// RegisterRoute implements api.RouteRegistry. Gin panics on duplicate
// patterns, so a repeated registration only swaps the mounted handler.
func (r *Router) RegisterRoute(route api.Route) error {
	method, err := api.NormalizeMethod(route.Method)
	if err != nil {
		return err
	}
	path := toNativePath(route.FullPath())

	if h, mount := r.mounts.Handler(method+" "+r.prefix+path, route); mount {
		r.group.Handle(method, path, wrap(h))
	}
	route.Method = method
	route.Prefix = r.prefix
	return r.registry.RegisterRoute(route)
}

// GetRegistry returns the route registry.
func (r *Router) GetRegistry() *api.RouteTable { return r.registry }

// Unwrap returns the underlying Gin engine.
func (r *Router) Unwrap() *ginpkg.Engine { return r.engine }

// ServeHTTP serves requests through the Gin engine.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

// wrap runs h with gin params available through Request.PathValue.
func wrap(h http.Handler) ginpkg.HandlerFunc {
	return func(c *ginpkg.Context) {
		for _, p := range c.Params {
			c.Request.SetPathValue(p.Key, p.Value)
		}
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func toNativePath(p string) string {
	// Convert named params {id} -> :id
	s := strings.ReplaceAll(p, "{", ":")
	s = strings.ReplaceAll(s, "}", "")

	// Gin needs a named catch-all; only a trailing "/*" is rewritten.
	if strings.HasSuffix(s, "/*") {
		s = strings.TrimSuffix(s, "/*") + "/*all"
	}
	return s
}
