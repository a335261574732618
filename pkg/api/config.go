package api

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultVersion is the API version segment used when none is set.
	DefaultVersion = "v1"

	// DefaultSubdir is appended to the content directory to form the default
	// scaffold output path.
	DefaultSubdir = "endpoints"

	// ContentDirEnv overrides the host content directory.
	ContentDirEnv = "ENDPOINTS_CONTENT_DIR"
)

// Config holds the settings shared by every endpoint of a group: where
// scaffolds are written, the API version segment and the class namespace.
//
// Setters never validate. Call Validate (Register does) before deriving
// paths or namespaces from a Config.
type Config struct {
	path      string
	version   string
	namespace string
}

// ConfigOption mutates a Config during construction.
type ConfigOption func(*Config)

// WithOutputPath sets the scaffold output directory.
func WithOutputPath(path string) ConfigOption {
	return func(c *Config) { c.path = path }
}

// WithVersion sets the API version segment.
func WithVersion(version string) ConfigOption {
	return func(c *Config) { c.version = version }
}

// WithNamespace sets the class namespace.
func WithNamespace(namespace string) ConfigOption {
	return func(c *Config) { c.namespace = namespace }
}

// NewConfig returns a Config populated with defaults and then the given
// options. The namespace has no default.
func NewConfig(opts ...ConfigOption) *Config {
	c := &Config{
		path:    filepath.Join(DefaultContentDir(), DefaultSubdir),
		version: DefaultVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultContentDir returns the host content directory: $ENDPOINTS_CONTENT_DIR
// when set, otherwise the working directory.
func DefaultContentDir() string {
	if dir := os.Getenv(ContentDirEnv); dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Path returns the scaffold output directory.
func (c *Config) Path() string { return c.path }

// SetPath sets the scaffold output directory.
func (c *Config) SetPath(path string) { c.path = path }

// Version returns the API version segment.
func (c *Config) Version() string { return c.version }

// SetVersion sets the API version segment.
func (c *Config) SetVersion(version string) { c.version = version }

// Namespace returns the class namespace, or "" when unset.
func (c *Config) Namespace() string { return c.namespace }

// SetNamespace sets the class namespace.
func (c *Config) SetNamespace(namespace string) { c.namespace = namespace }

// ValidateRoutes reports whether the configuration can be used to derive
// route namespaces and class names. The output path is not consulted.
// Errors wrap ErrConfig.
func (c *Config) ValidateRoutes() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrConfig)
	}
	fields := struct {
		Version   string `validate:"required,apiversion"`
		Namespace string `validate:"required,namespace"`
	}{c.version, c.namespace}

	if err := validate.Struct(fields); err != nil {
		return fmt.Errorf("%w: %s", ErrConfig, describeValidation(err))
	}
	return nil
}

// Validate is ValidateRoutes plus a non-empty output path, which scaffold
// generation needs.
func (c *Config) Validate() error {
	if err := c.ValidateRoutes(); err != nil {
		return err
	}
	if c.path == "" {
		return fmt.Errorf("%w: path failed required", ErrConfig)
	}
	return nil
}
