package api

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteFullPath(t *testing.T) {
	tests := []struct {
		route Route
		want  string
	}{
		{Route{Namespace: "acme/v2", Path: "orders"}, "/acme/v2/orders"},
		{Route{Namespace: "/acme/v1/", Path: "/shipments"}, "/acme/v1/shipments"},
		{Route{Namespace: "acme.shop/v1", Path: "orders/{id}"}, "/acme.shop/v1/orders/{id}"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.route.FullPath())
		})
	}
}

func TestRouteMountPath(t *testing.T) {
	route := Route{Namespace: "acme/v1", Path: "orders"}
	assert.Equal(t, "/acme/v1/orders", route.MountPath())

	route.Prefix = "/api/"
	assert.Equal(t, "/api/acme/v1/orders", route.MountPath())
}

func TestRouteTableKeepsPrefixesApart(t *testing.T) {
	table := NewRouteTable()
	route := Route{Namespace: "acme/v1", Path: "orders", Method: "GET"}

	for _, prefix := range []string{"/public", "/admin", "/public"} {
		route.Prefix = prefix
		require.NoError(t, table.RegisterRoute(route))
	}

	routes := table.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/public/acme/v1/orders", routes[0].MountPath())
	assert.Equal(t, "/admin/acme/v1/orders", routes[1].MountPath())
}

func TestRouteTable(t *testing.T) {
	table := NewRouteTable()
	assert.Equal(t, 0, table.Len())

	get := Route{Namespace: "acme/v1", Path: "orders", Method: "GET", Callback: Reference{"acme.Orders", "getOrders"}}
	post := Route{Namespace: "acme/v1", Path: "orders", Method: "POST", Callback: Reference{"acme.Orders", "postOrders"}}
	require.NoError(t, table.RegisterRoute(get))
	require.NoError(t, table.RegisterRoute(post))
	assert.Equal(t, 2, table.Len())

	// Same namespace, path and method replaces in place.
	get.Args = ArgSchema{"page": {Type: "integer"}}
	require.NoError(t, table.RegisterRoute(get))

	routes := table.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "GET", routes[0].Method)
	assert.Equal(t, get.Args, routes[0].Args)
	assert.Equal(t, "POST", routes[1].Method)

	// The returned slice is a copy.
	routes[0].Method = "PATCH"
	assert.Equal(t, "GET", table.GetRoutes()[0].Method)
}

func TestRouteTableWithGenerator(t *testing.T) {
	table := NewRouteTable()
	g, err := NewGenerator("orders", []string{"GET", "POST"}, testConfig(t), WithResolver(nil))
	require.NoError(t, err)

	require.NoError(t, g.Register(table))
	// Re-registration on a repeated startup does not grow the table.
	require.NoError(t, g.Register(table))
	assert.Equal(t, 2, table.Len())
}

func TestRouteTableConcurrentUse(t *testing.T) {
	table := NewRouteTable()
	var wg sync.WaitGroup
	for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		wg.Add(1)
		go func(method string) {
			defer wg.Done()
			_ = table.RegisterRoute(Route{Namespace: "acme/v1", Path: "orders", Method: method})
			_ = table.GetRoutes()
		}(m)
	}
	wg.Wait()
	assert.Equal(t, 5, table.Len())
}
