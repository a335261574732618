package api

import "errors"

var (
	// ErrConfig reports a configuration that cannot be used to build route
	// namespaces, class names or scaffold paths.
	ErrConfig = errors.New("invalid endpoint configuration")

	// ErrInvalidEndpoint reports an endpoint name that cannot be registered or
	// turned into a class name.
	ErrInvalidEndpoint = errors.New("invalid endpoint name")

	// ErrNoMethods is returned when an endpoint is declared without any HTTP
	// method.
	ErrNoMethods = errors.New("endpoint declares no HTTP methods")

	// ErrHandlerNotBound is returned by Register when the resolver has no
	// handler for a derived callback or permission reference.
	ErrHandlerNotBound = errors.New("handler not bound")

	// ErrScaffoldIO wraps directory creation and file write failures during
	// scaffold generation.
	ErrScaffoldIO = errors.New("scaffold I/O failure")

	// ErrUnsupportedMethod is returned by host routers for HTTP methods they
	// cannot mount.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
)

// ErrorResponse represents a generic error response structure.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse represents argument validation failures with
// per-argument details.
type ValidationErrorResponse struct {
	Message string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

// Error implements the error interface for ValidationErrorResponse.
func (v *ValidationErrorResponse) Error() string {
	return v.Message
}
