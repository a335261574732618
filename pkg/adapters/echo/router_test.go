package echo

import (
	"net/http"
	"testing"

	echosdk "github.com/labstack/echo/v4"

	"github.com/gork-labs/endpoints/internal/adaptertest"
)

func TestNewRouter(t *testing.T) {
	e := echosdk.New()
	if NewRouter(e).Unwrap() != e {
		t.Error("Router echo instance doesn't match provided instance")
	}
	if NewRouter(nil).Unwrap() == nil {
		t.Error("Router should create new Echo when nil is passed")
	}
}

func TestRouter(t *testing.T) {
	adaptertest.Run(t, adaptertest.Suite[*Router]{
		New:              func() *Router { return NewRouter(nil) },
		Group:            func(r *Router, prefix string) *Router { return r.Group(prefix) },
		Do:               func(r *Router, req *http.Request) *http.Response { return adaptertest.Serve(r, req) },
		MethodNotAllowed: http.StatusMethodNotAllowed,
	})
}

func TestNestedGroup(t *testing.T) {
	router := NewRouter(nil)
	nested := router.Group("/api").Group("/internal")
	if nested.prefix != "/api/internal" {
		t.Fatalf("prefix = %q", nested.prefix)
	}
	if nested.Unwrap() != router.Unwrap() {
		t.Error("nested group does not share the Echo instance")
	}
}

func TestToNativePath(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"/acme/v1/orders/{id}", "/acme/v1/orders/:id"},
		{"/acme/v1/orders/{id}/items/{item}", "/acme/v1/orders/:id/items/:item"},
		{"/acme/v1/files/*", "/acme/v1/files/*"},
	}
	for _, tt := range tests {
		if got := toNativePath(tt.in); got != tt.out {
			t.Errorf("toNativePath(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}
