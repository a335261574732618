package api

import (
	"strings"
	"sync"
)

// Route is one (endpoint, method) registration handed to the host router.
// Handler and Allow are nil when the generator runs without a resolver.
type Route struct {
	// Prefix is the host router group the route was mounted under. Adapters
	// fill it in; generators leave it empty.
	Prefix     string    `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Namespace  string    `json:"namespace" yaml:"namespace"`
	Path       string    `json:"path" yaml:"path"`
	Method     string    `json:"method" yaml:"method"`
	Callback   Reference `json:"callback" yaml:"callback"`
	Permission Reference `json:"permission" yaml:"permission"`
	Args       ArgSchema `json:"args,omitempty" yaml:"args,omitempty"`

	Handler Callback           `json:"-" yaml:"-"`
	Allow   PermissionCallback `json:"-" yaml:"-"`
}

// FullPath returns the absolute route path, "/<namespace>/<path>".
func (r Route) FullPath() string {
	return "/" + strings.Trim(r.Namespace, "/") + "/" + strings.TrimPrefix(r.Path, "/")
}

// MountPath returns FullPath under the route's group prefix.
func (r Route) MountPath() string {
	return strings.TrimSuffix(r.Prefix, "/") + r.FullPath()
}

// RouteRegistry is the host router capability consumed by Generator.Register.
type RouteRegistry interface {
	RegisterRoute(route Route) error
}

// RouteTable records registered routes in memory. Host adapters embed one so
// that tooling can enumerate what was mounted; on its own it serves as a
// registry for tests and the CLI.
//
// The table is safe for concurrent use by multiple goroutines.
type RouteTable struct {
	mu     sync.RWMutex
	routes []Route
}

// NewRouteTable creates a new, empty table.
func NewRouteTable() *RouteTable {
	return &RouteTable{routes: make([]Route, 0)}
}

// RegisterRoute implements RouteRegistry. Re-registering the same
// (prefix, namespace, path, method) replaces the earlier entry, so a route
// mounted under two groups is listed twice.
func (t *RouteTable) RegisterRoute(route Route) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, existing := range t.routes {
		if existing.Prefix == route.Prefix && existing.Namespace == route.Namespace && existing.Path == route.Path && existing.Method == route.Method {
			t.routes[i] = route
			return nil
		}
	}
	t.routes = append(t.routes, route)
	return nil
}

// GetRoutes returns a copy of all registered routes in registration order.
func (t *RouteTable) GetRoutes() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cp := make([]Route, len(t.routes))
	copy(cp, t.routes)
	return cp
}

// Len returns the number of registered routes.
func (t *RouteTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.routes)
}
