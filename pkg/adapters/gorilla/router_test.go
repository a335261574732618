package gorilla

import (
	"net/http"
	"testing"

	muxpkg "github.com/gorilla/mux"

	"github.com/gork-labs/endpoints/internal/adaptertest"
)

func TestNewRouter(t *testing.T) {
	r := muxpkg.NewRouter()
	router := NewRouter(r)
	if router.Unwrap() != r {
		t.Error("Router instance doesn't match provided instance")
	}
	if NewRouter(nil).Unwrap() == nil {
		t.Error("Router should create new mux.Router when nil is passed")
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

func TestToNativePath(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"/acme/v1/files/*", "/acme/v1/files/{rest:.*}"},
		{"/acme/v1/orders/{id}", "/acme/v1/orders/{id}"},
	}

	for _, tt := range tests {
		if got := toNativePath(tt.in); got != tt.out {
			t.Fatalf("toNativePath(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}
