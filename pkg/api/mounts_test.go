package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMountsSwapsHandlerOnRemount(t *testing.T) {
	m := NewMounts()

	first, mount := m.Handler("GET /acme/v1/orders", Route{Handler: okHandler("first")})
	assert.True(t, mount)

	second, mount := m.Handler("GET /acme/v1/orders", Route{Handler: okHandler("second")})
	assert.False(t, mount)
	assert.Same(t, first, second)

	rec := httptest.NewRecorder()
	first.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "second")

	_, mount = m.Handler("POST /acme/v1/orders", Route{Handler: okHandler("post")})
	assert.True(t, mount)
}
