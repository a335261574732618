package api

import (
	"net/http"
	"sync"
)

// Mounts remembers which routes a host router has already mounted. Native
// routers either panic on or shadow a second registration of the same
// pattern, so repeated registration swaps the handler behind the first mount
// instead.
//
// Mounts is safe for concurrent use.
type Mounts struct {
	mu     sync.Mutex
	routes map[string]*mountedRoute
}

type mountedRoute struct {
	mu sync.RWMutex
	h  http.HandlerFunc
}

func (m *mountedRoute) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	h := m.h
	m.mu.RUnlock()
	h(w, r)
}

// NewMounts returns an empty set.
func NewMounts() *Mounts {
	return &Mounts{routes: make(map[string]*mountedRoute)}
}

// Handler returns the handler for route under key (typically "METHOD path")
// and whether the caller still has to mount it on the native router.
func (m *Mounts) Handler(key string, route Route) (http.Handler, bool) {
	h := NewHandler(route)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.routes[key]; ok {
		existing.mu.Lock()
		existing.h = h
		existing.mu.Unlock()
		return existing, false
	}
	mr := &mountedRoute{h: h}
	m.routes[key] = mr
	return mr, true
}
