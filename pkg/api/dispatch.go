package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

var supportedMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
}

// NormalizeMethod upper-cases m and checks that host routers can mount it.
func NormalizeMethod(m string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(m))
	if _, ok := supportedMethods[upper]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, m)
	}
	return upper, nil
}

// NewHandler builds the host-side request pipeline for a route: argument
// checks, the permission callback, then the endpoint callback.
func NewHandler(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if route.Handler == nil {
			writeError(w, http.StatusNotImplemented, fmt.Sprintf("no handler bound for %s", route.Callback))
			return
		}

		if len(route.Args) > 0 {
			if err := applyArgs(r, route.Args); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(err)
				return
			}
		}

		if route.Allow != nil && !route.Allow(r) {
			writeError(w, http.StatusForbidden, "Sorry, you are not allowed to do that.")
			return
		}

		resp, err := route.Handler(r)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeResponse(w, resp)
	}
}

// applyArgs checks query and form values against schema. Defaults for absent
// optional arguments are written back into the request URL.
func applyArgs(r *http.Request, schema ArgSchema) *ValidationErrorResponse {
	values := r.URL.Query()
	// ParseForm only reads urlencoded bodies, whatever their parameters.
	if err := r.ParseForm(); err == nil {
		for k, v := range r.PostForm {
			if _, ok := values[k]; !ok {
				values[k] = v
			}
		}
	}

	if details := schema.checkValues(values); details != nil {
		return &ValidationErrorResponse{Message: "Validation failed", Details: details}
	}
	r.URL.RawQuery = values.Encode()
	return nil
}

func writeResponse(w http.ResponseWriter, resp *Response) {
	status := http.StatusOK
	if resp != nil {
		for k, vs := range resp.Headers {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		if resp.Status != 0 {
			status = resp.Status
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusNoContent || resp == nil || resp.Data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(resp.Data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}
