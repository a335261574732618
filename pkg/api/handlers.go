package api

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Response is what an endpoint callback hands back to the host. Data is
// encoded as JSON.
type Response struct {
	Status  int
	Data    any
	Headers http.Header
}

// NewResponse builds a Response with the given status and payload.
func NewResponse(status int, data any) *Response {
	return &Response{Status: status, Data: data, Headers: make(http.Header)}
}

// Callback handles one HTTP method of an endpoint.
type Callback func(r *http.Request) (*Response, error)

// PermissionCallback decides whether a request may reach the callback.
type PermissionCallback func(r *http.Request) bool

// ClassResolver turns references derived by naming convention into
// invocable handlers.
type ClassResolver interface {
	ResolveCallback(ref Reference) (Callback, error)
	ResolvePermission(ref Reference) (PermissionCallback, error)
}

// HandlerTable is a ClassResolver backed by explicit bindings. Generated
// controllers bind their methods into DefaultHandlers from an init function.
//
// HandlerTable is safe for concurrent use.
type HandlerTable struct {
	mu          sync.RWMutex
	callbacks   map[Reference]Callback
	permissions map[Reference]PermissionCallback
}

// DefaultHandlers is the table used by generators that are not given a
// resolver explicitly.
var DefaultHandlers = NewHandlerTable()

// NewHandlerTable returns an empty table.
func NewHandlerTable() *HandlerTable {
	return &HandlerTable{
		callbacks:   make(map[Reference]Callback),
		permissions: make(map[Reference]PermissionCallback),
	}
}

// BindCallback binds fn to ref, replacing any previous binding.
func (t *HandlerTable) BindCallback(ref Reference, fn Callback) {
	t.mu.Lock()
	t.callbacks[ref] = fn
	t.mu.Unlock()
}

// BindPermission binds fn to ref, replacing any previous binding.
func (t *HandlerTable) BindPermission(ref Reference, fn PermissionCallback) {
	t.mu.Lock()
	t.permissions[ref] = fn
	t.mu.Unlock()
}

// ResolveCallback implements ClassResolver.
func (t *HandlerTable) ResolveCallback(ref Reference) (Callback, error) {
	t.mu.RLock()
	fn, ok := t.callbacks[ref]
	t.mu.RUnlock()
	if !ok || fn == nil {
		return nil, fmt.Errorf("%w: callback %s", ErrHandlerNotBound, ref)
	}
	return fn, nil
}

// ResolvePermission implements ClassResolver.
func (t *HandlerTable) ResolvePermission(ref Reference) (PermissionCallback, error) {
	t.mu.RLock()
	fn, ok := t.permissions[ref]
	t.mu.RUnlock()
	if !ok || fn == nil {
		return nil, fmt.Errorf("%w: permission %s", ErrHandlerNotBound, ref)
	}
	return fn, nil
}

// Classes lists every class with at least one binding, sorted.
func (t *HandlerTable) Classes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	seen := make(map[string]struct{})
	for ref := range t.callbacks {
		seen[ref.Class] = struct{}{}
	}
	for ref := range t.permissions {
		seen[ref.Class] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}
