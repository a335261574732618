package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(data any) Callback {
	return func(*http.Request) (*Response, error) {
		return NewResponse(http.StatusOK, data), nil
	}
}

func TestNewHandler(t *testing.T) {
	allow := func(*http.Request) bool { return true }
	deny := func(*http.Request) bool { return false }

	tests := []struct {
		name       string
		route      Route
		target     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unbound handler",
			route:      Route{Callback: Reference{"acme.Orders", "getOrders"}},
			target:     "/",
			wantStatus: http.StatusNotImplemented,
			wantBody:   "acme.Orders::getOrders",
		},
		{
			name:       "permission denied",
			route:      Route{Handler: okHandler("secret"), Allow: deny},
			target:     "/",
			wantStatus: http.StatusForbidden,
			wantBody:   "not allowed",
		},
		{
			name:       "allowed",
			route:      Route{Handler: okHandler(map[string]int{"count": 2}), Allow: allow},
			target:     "/",
			wantStatus: http.StatusOK,
			wantBody:   `{"count":2}`,
		},
		{
			name:       "nil permission callback allows",
			route:      Route{Handler: okHandler("ok")},
			target:     "/",
			wantStatus: http.StatusOK,
			wantBody:   `"ok"`,
		},
		{
			name: "callback error",
			route: Route{Allow: allow, Handler: func(*http.Request) (*Response, error) {
				return nil, errors.New("database down")
			}},
			target:     "/",
			wantStatus: http.StatusInternalServerError,
			wantBody:   "database down",
		},
		{
			name: "custom status",
			route: Route{Allow: allow, Handler: func(*http.Request) (*Response, error) {
				return NewResponse(http.StatusCreated, map[string]string{"id": "42"}), nil
			}},
			target:     "/",
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":"42"}`,
		},
		{
			name: "required argument missing",
			route: Route{
				Allow:   allow,
				Handler: okHandler("ok"),
				Args:    ArgSchema{"sku": {Type: "string", Required: true}},
			},
			target:     "/",
			wantStatus: http.StatusBadRequest,
			wantBody:   `"sku":["required"]`,
		},
		{
			name: "argument fails validate tag",
			route: Route{
				Allow:   allow,
				Handler: okHandler("ok"),
				Args:    ArgSchema{"page": {Type: "integer", Validate: "max=2"}},
			},
			target:     "/?page=12345",
			wantStatus: http.StatusBadRequest,
			wantBody:   `"page":["max"]`,
		},
		{
			name: "argument fails type",
			route: Route{
				Allow:   allow,
				Handler: okHandler("ok"),
				Args:    ArgSchema{"page": {Type: "integer"}},
			},
			target:     "/?page=two",
			wantStatus: http.StatusBadRequest,
			wantBody:   `"page":["type"]`,
		},
		{
			name: "argument outside enum",
			route: Route{
				Allow:   allow,
				Handler: okHandler("ok"),
				Args:    ArgSchema{"status": {Enum: []string{"open", "closed"}}},
			},
			target:     "/?status=lost",
			wantStatus: http.StatusBadRequest,
			wantBody:   `"status":["enum"]`,
		},
		{
			name: "permission runs after argument checks",
			route: Route{
				Allow:   deny,
				Handler: okHandler("ok"),
				Args:    ArgSchema{"sku": {Required: true}},
			},
			target:     "/",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(tt.route).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestNewHandlerInjectsDefaults(t *testing.T) {
	var seen string
	route := Route{
		Args: ArgSchema{"per_page": {Type: "integer", Default: 10}},
		Handler: func(r *http.Request) (*Response, error) {
			seen = r.URL.Query().Get("per_page")
			return NewResponse(http.StatusNoContent, nil), nil
		},
	}

	rec := httptest.NewRecorder()
	NewHandler(route).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "10", seen)
	assert.Empty(t, rec.Body.String())
}

func TestNewHandlerReadsFormArguments(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantStatus  int
		wantSKU     string
	}{
		{name: "plain", contentType: "application/x-www-form-urlencoded", wantStatus: http.StatusOK, wantSKU: "ABC123"},
		{name: "with charset", contentType: "application/x-www-form-urlencoded; charset=UTF-8", wantStatus: http.StatusOK, wantSKU: "ABC123"},
		{name: "json body is not form", contentType: "application/json", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			route := Route{
				Args: ArgSchema{"sku": {Required: true, Validate: "alphanum"}},
				Handler: func(r *http.Request) (*Response, error) {
					seen = r.URL.Query().Get("sku")
					return NewResponse(http.StatusOK, nil), nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("sku=ABC123"))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			NewHandler(route).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantSKU, seen)
		})
	}
}

func TestNewHandlerResponseHeaders(t *testing.T) {
	route := Route{Handler: func(*http.Request) (*Response, error) {
		resp := NewResponse(http.StatusOK, []string{"a"})
		resp.Headers.Set("X-WP-Total", "1")
		return resp, nil
	}}

	rec := httptest.NewRecorder()
	NewHandler(route).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "1", rec.Header().Get("X-WP-Total"))

	var body []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"a"}, body)
}

func TestNormalizeMethod(t *testing.T) {
	m, err := NormalizeMethod(" get ")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, m)

	for _, ok := range []string{"POST", "put", "Patch", "DELETE", "HEAD", "OPTIONS"} {
		_, err := NormalizeMethod(ok)
		assert.NoError(t, err, ok)
	}

	_, err = NormalizeMethod("M-SEARCH")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}
