package fiber

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/gork-labs/endpoints/pkg/api"
)

// Router wraps a Fiber app or group.
type Router struct {
	app      *fiber.App
	router   fiber.Router
	registry *api.RouteTable
	mounts   *api.Mounts
	prefix   string
}

// NewRouter creates a new router around the given Fiber app.
func NewRouter(app *fiber.App) *Router {
	if app == nil {
		app = fiber.New()
	}
	return &Router{
		app:      app,
		router:   app,
		registry: api.NewRouteTable(),
		mounts:   api.NewMounts(),
	}
}

// Group creates a sub-router with prefix sharing the same registry.
func (r *Router) Group(prefix string) *Router {
	return &Router{
		app:      r.app,
		router:   r.router.Group(prefix),
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
		r.router.Add(method, path, wrap(h))
	}
	route.Method = method
	route.Prefix = r.prefix
	return r.registry.RegisterRoute(route)
}

// GetRegistry returns the route registry.
func (r *Router) GetRegistry() *api.RouteTable { return r.registry }

// Unwrap returns the underlying Fiber app instance.
func (r *Router) Unwrap() *fiber.App { return r.app }

// wrap bridges h onto fasthttp. Route parameters are copied out of the Fiber
// context before conversion because they do not survive it.
func wrap(h http.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := make(map[string]string, len(c.Route().Params))
		for _, name := range c.Route().Params {
			params[name] = utils.CopyString(c.Params(name))
		}
		return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			for k, v := range params {
				req.SetPathValue(k, v)
			}
			h.ServeHTTP(w, req)
		})(c)
	}
}

// toNativePath converts {param} placeholders to :param expected by Fiber.
func toNativePath(p string) string {
	s := strings.ReplaceAll(p, "{", ":")
	return strings.ReplaceAll(s, "}", "")
}
