package echo

import (
	"net/http"
	"strings"

	echosdk "github.com/labstack/echo/v4"

	"github.com/gork-labs/endpoints/pkg/api"
)

// Router wraps an Echo engine or group.
// If group == nil we operate on the root Echo instance.
type Router struct {
	echo     *echosdk.Echo
	group    *echosdk.Group
	registry *api.RouteTable
	mounts   *api.Mounts
	prefix   string
}

// NewRouter creates a new router around the given Echo instance.
func NewRouter(e *echosdk.Echo) *Router {
	if e == nil {
		e = echosdk.New()
	}
	return &Router{
		echo:     e,
		registry: api.NewRouteTable(),
		mounts:   api.NewMounts(),
	}
}

// Group creates a sub-router with prefix sharing the same registry.
func (r *Router) Group(prefix string) *Router {
	var g *echosdk.Group
	if r.group != nil {
		g = r.group.Group(prefix)
	} else {
		g = r.echo.Group(prefix)
	}
	return &Router{
		echo:     r.echo,
		group:    g,
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
	path := toNativePath(route.FullPath())

	if h, mount := r.mounts.Handler(method+" "+r.prefix+path, route); mount {
		if r.group != nil {
			r.group.Add(method, path, wrap(h))
		} else {
			r.echo.Add(method, path, wrap(h))
		}
	}
	route.Method = method
	route.Prefix = r.prefix
	return r.registry.RegisterRoute(route)
}

// GetRegistry returns the registry shared with every group.
func (r *Router) GetRegistry() *api.RouteTable { return r.registry }

// Unwrap returns the root Echo instance.
func (r *Router) Unwrap() *echosdk.Echo { return r.echo }

// ServeHTTP serves requests through the root Echo instance.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.echo.ServeHTTP(w, req)
}

// wrap runs h with echo path parameters available through Request.PathValue.
func wrap(h http.Handler) echosdk.HandlerFunc {
	return func(ec echosdk.Context) error {
		req := ec.Request()
		values := ec.ParamValues()
		for i, name := range ec.ParamNames() {
			if i < len(values) {
				req.SetPathValue(name, values[i])
			}
		}
		h.ServeHTTP(ec.Response(), req)
		return nil
	}
}

// toNativePath converts {param} placeholders to :param expected by Echo.
func toNativePath(p string) string {
	s := strings.ReplaceAll(p, "{", ":")
	return strings.ReplaceAll(s, "}", "")
}
