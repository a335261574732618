// Package manifest loads the endpoint declarations the CLI works from.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/gork-labs/endpoints/pkg/api"
)

// EnvPrefix prefixes environment overrides, e.g. ENDPOINTS_NAMESPACE.
const EnvPrefix = "ENDPOINTS"

// DefaultFile is looked up when no manifest path is given.
const DefaultFile = "endpoints.yaml"

// ErrManifest wraps read, decode and validation failures.
var ErrManifest = errors.New("invalid manifest")

// Manifest is the decoded manifest file.
//
// Keys are case-insensitive, so argument names must be lower case
// (snake_case); Load rejects any other spelling.
type Manifest struct {
	OutputPath string     `mapstructure:"output_path"`
	APIVersion string     `mapstructure:"api_version"`
	Namespace  string     `mapstructure:"namespace"`
	Endpoints  []Endpoint `mapstructure:"endpoints" validate:"dive"`

	file string
}

// Endpoint declares one endpoint and the methods it answers.
type Endpoint struct {
	Name    string   `mapstructure:"name" validate:"required"`
	Methods []string `mapstructure:"methods" validate:"min=1,dive,required"`
	// Args maps an HTTP method to the argument schema of that method.
	Args map[string]api.ArgSchema `mapstructure:"args"`
}

// Load reads the manifest at path, or DefaultFile when path is empty, and
// applies defaults and ENDPOINTS_* environment overrides. A missing default
// file is not an error: the manifest then only carries defaults and
// overrides.
func Load(path string) (*Manifest, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !os.IsNotExist(unwrapPathError(err)) {
			return nil, fmt.Errorf("%w: read %s: %w", ErrManifest, path, err)
		}
	}

	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrManifest, path, err)
	}
	m.file = v.ConfigFileUsed()

	if err := checkArgNames(m.file); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifest, path, err)
	}
	if err := api.Validator().Struct(m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifest, path, err)
	}
	return &m, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_path", filepath.Join(api.DefaultContentDir(), "endpoints"))
	v.SetDefault("api_version", "v1")
	v.SetDefault("namespace", "")
}

var argName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// checkArgNames rejects argument names that viper would silently fold to
// lower case. Only YAML and JSON manifests carry the raw spelling needed
// for the check.
func checkArgNames(file string) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil
	}
	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var raw struct {
		Endpoints []struct {
			Name string                          `yaml:"name"`
			Args map[string]map[string]yaml.Node `yaml:"args"`
		} `yaml:"endpoints"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, ep := range raw.Endpoints {
		for method, args := range ep.Args {
			for name := range args {
				if !argName.MatchString(name) {
					return fmt.Errorf("endpoint %q %s: argument %q must be lower case snake_case", ep.Name, method, name)
				}
			}
		}
	}
	return nil
}

// unwrapPathError digs the *os.PathError out of viper's read error so that a
// missing file can be told apart from a broken one.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe
	}
	return err
}

// File returns the manifest file that was read, if any.
func (m *Manifest) File() string { return m.file }

// Config builds the generator configuration. A relative output path is
// resolved against the manifest's directory.
func (m *Manifest) Config() *api.Config {
	out := m.OutputPath
	if out != "" && !filepath.IsAbs(out) && m.file != "" {
		out = filepath.Join(filepath.Dir(m.file), out)
	}
	return api.NewConfig(
		api.WithOutputPath(out),
		api.WithVersion(m.APIVersion),
		api.WithNamespace(m.Namespace),
	)
}

// Generators declares one generator per endpoint against cfg, in manifest
// order. Argument schemas are matched to methods case-insensitively.
func (m *Manifest) Generators(cfg *api.Config, opts ...api.GeneratorOption) ([]*api.Generator, error) {
	gens := make([]*api.Generator, 0, len(m.Endpoints))
	for _, ep := range m.Endpoints {
		epOpts := append(opts[:len(opts):len(opts)], api.WithArgs(ep.methodArgs()))
		g, err := api.NewGenerator(ep.Name, ep.Methods, cfg, epOpts...)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, nil
}

// methodArgs re-keys Args by the methods exactly as declared.
func (ep Endpoint) methodArgs() map[string]api.ArgSchema {
	if len(ep.Args) == 0 {
		return nil
	}
	byUpper := make(map[string]api.ArgSchema, len(ep.Args))
	for method, schema := range ep.Args {
		byUpper[strings.ToUpper(method)] = schema
	}
	args := make(map[string]api.ArgSchema)
	for _, method := range ep.Methods {
		if schema, ok := byUpper[strings.ToUpper(method)]; ok {
			args[method] = schema
		}
	}
	return args
}

// ImportPath returns the Go import path of dir by locating the enclosing
// go.mod. ok is false when dir is not inside a module.
func ImportPath(dir string) (path string, ok bool, err error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}
	for root := abs; ; {
		data, err := os.ReadFile(filepath.Join(root, "go.mod"))
		switch {
		case err == nil:
			f, err := modfile.Parse("go.mod", data, nil)
			if err != nil {
				return "", false, err
			}
			if f.Module == nil {
				return "", false, fmt.Errorf("%s: no module directive", filepath.Join(root, "go.mod"))
			}
			rel, err := filepath.Rel(root, abs)
			if err != nil {
				return "", false, err
			}
			if rel == "." {
				return f.Module.Mod.Path, true, nil
			}
			return f.Module.Mod.Path + "/" + filepath.ToSlash(rel), true, nil
		case !os.IsNotExist(err):
			return "", false, err
		}

		parent := filepath.Dir(root)
		if parent == root {
			return "", false, nil
		}
		root = parent
	}
}
