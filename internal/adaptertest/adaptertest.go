// Package adaptertest holds the behaviour every host router adapter must
// share, so each adapter package can run the same checks against its native
// router.
package adaptertest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gork-labs/endpoints/pkg/api"
)

// Router is the surface common to all adapters.
type Router interface {
	api.RouteRegistry
	GetRegistry() *api.RouteTable
}

// Suite describes how to drive one adapter.
type Suite[R Router] struct {
	New   func() R
	Group func(r R, prefix string) R
	// Do sends req through the root router.
	Do func(r R, req *http.Request) *http.Response
	// MethodNotAllowed is the status the native router answers for a known
	// path with an undeclared method.
	MethodNotAllowed int
}

// Serve adapts any http.Handler router to Suite.Do.
func Serve(h http.Handler, req *http.Request) *http.Response {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

// OrdersGenerator returns a generator for acme/v2 "orders" whose callbacks
// echo the lower-cased method and whose permission callback rejects requests
// carrying "Authorization: deny".
func OrdersGenerator(t *testing.T, methods ...string) *api.Generator {
	t.Helper()
	table := api.NewHandlerTable()
	cfg := api.NewConfig(api.WithNamespace("acme"), api.WithVersion("v2"), api.WithOutputPath(t.TempDir()))
	g, err := api.NewGenerator("orders", methods, cfg, api.WithResolver(table))
	require.NoError(t, err)

	for _, m := range methods {
		method := m
		table.BindCallback(g.CallbackReference(m), func(r *http.Request) (*api.Response, error) {
			return api.NewResponse(http.StatusOK, map[string]string{"method": method}), nil
		})
	}
	table.BindPermission(g.PermissionReference(), func(r *http.Request) bool {
		return r.Header.Get("Authorization") != "deny"
	})
	return g
}

// Run executes the shared adapter checks.
func Run[R Router](t *testing.T, s Suite[R]) {
	t.Run("dispatch", func(t *testing.T) {
		router := s.New()
		require.NoError(t, OrdersGenerator(t, "get", "post").Register(router))
		assert.Equal(t, 2, router.GetRegistry().Len())

		tests := []struct {
			name       string
			method     string
			auth       string
			wantStatus int
			wantBody   string
		}{
			{name: "get", method: http.MethodGet, wantStatus: http.StatusOK, wantBody: `"method":"get"`},
			{name: "post", method: http.MethodPost, wantStatus: http.StatusOK, wantBody: `"method":"post"`},
			{name: "denied", method: http.MethodGet, auth: "deny", wantStatus: http.StatusForbidden, wantBody: "not allowed"},
			{name: "method not declared", method: http.MethodPut, wantStatus: s.MethodNotAllowed},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := httptest.NewRequest(tt.method, "/acme/v2/orders", nil)
				if tt.auth != "" {
					req.Header.Set("Authorization", tt.auth)
				}
				status, body := read(t, s.Do(router, req))
				assert.Equal(t, tt.wantStatus, status, body)
				assert.Contains(t, body, tt.wantBody)
			})
		}
	})

	t.Run("re-registration swaps handler", func(t *testing.T) {
		router := s.New()
		for _, msg := range []string{"first", "second"} {
			require.NoError(t, router.RegisterRoute(api.Route{
				Namespace: "acme/v1",
				Path:      "orders",
				Method:    "GET",
				Handler:   constant(msg),
			}))
		}
		assert.Equal(t, 1, router.GetRegistry().Len())

		status, body := read(t, s.Do(router, httptest.NewRequest(http.MethodGet, "/acme/v1/orders", nil)))
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "second")
	})

	t.Run("unsupported method", func(t *testing.T) {
		router := s.New()
		err := router.RegisterRoute(api.Route{Namespace: "acme/v1", Path: "orders", Method: "BREW"})
		assert.ErrorIs(t, err, api.ErrUnsupportedMethod)
		assert.Zero(t, router.GetRegistry().Len())
	})

	t.Run("group prefix and path values", func(t *testing.T) {
		router := s.New()
		group := s.Group(router, "/api")
		assert.Same(t, router.GetRegistry(), group.GetRegistry())

		require.NoError(t, group.RegisterRoute(api.Route{
			Namespace: "acme/v1",
			Path:      "orders/{id}",
			Method:    "GET",
			Handler: func(r *http.Request) (*api.Response, error) {
				return api.NewResponse(http.StatusOK, r.PathValue("id")), nil
			},
		}))

		status, body := read(t, s.Do(router, httptest.NewRequest(http.MethodGet, "/api/acme/v1/orders/42", nil)))
		assert.Equal(t, http.StatusOK, status, body)
		assert.Contains(t, body, `"42"`)

		status, _ = read(t, s.Do(router, httptest.NewRequest(http.MethodGet, "/acme/v1/orders/42", nil)))
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("same route under two groups", func(t *testing.T) {
		router := s.New()
		for _, prefix := range []string{"/public", "/admin"} {
			require.NoError(t, s.Group(router, prefix).RegisterRoute(api.Route{
				Namespace: "acme/v1",
				Path:      "orders",
				Method:    "GET",
				Handler:   constant(prefix),
			}))
		}

		routes := router.GetRegistry().GetRoutes()
		require.Len(t, routes, 2)
		assert.Equal(t, "/public/acme/v1/orders", routes[0].MountPath())
		assert.Equal(t, "/admin/acme/v1/orders", routes[1].MountPath())

		for _, prefix := range []string{"/public", "/admin"} {
			status, body := read(t, s.Do(router, httptest.NewRequest(http.MethodGet, prefix+"/acme/v1/orders", nil)))
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, prefix)
		}
	})

	t.Run("wildcard", func(t *testing.T) {
		router := s.New()
		require.NoError(t, router.RegisterRoute(api.Route{
			Namespace: "acme/v1",
			Path:      "files/*",
			Method:    "GET",
			Handler:   constant("file"),
		}))

		status, body := read(t, s.Do(router, httptest.NewRequest(http.MethodGet, "/acme/v1/files/a/b.txt", nil)))
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "file")
	})

	t.Run("argument validation", func(t *testing.T) {
		router := s.New()
		require.NoError(t, router.RegisterRoute(api.Route{
			Namespace: "acme/v1",
			Path:      "orders",
			Method:    "GET",
			Args:      api.ArgSchema{"page": {Type: "integer", Default: 1}},
			Handler: func(r *http.Request) (*api.Response, error) {
				return api.NewResponse(http.StatusOK, r.URL.Query().Get("page")), nil
			},
		}))

		status, body := read(t, s.Do(router, httptest.NewRequest(http.MethodGet, "/acme/v1/orders?page=x", nil)))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body, `"page":["type"]`)

		status, body = read(t, s.Do(router, httptest.NewRequest(http.MethodGet, "/acme/v1/orders", nil)))
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `"1"`)
	})
}

func constant(msg string) api.Callback {
	return func(*http.Request) (*api.Response, error) {
		return api.NewResponse(http.StatusOK, msg), nil
	}
}

func read(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	require.NotNil(t, resp)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}
