package api

import (
	"fmt"
	"net/url"
	"sort"
)

// ArgSpec describes one request argument accepted by an endpoint method.
// Hosts receive it as-is; the dispatch pipeline in this package enforces
// Required, Default and Validate.
type ArgSpec struct {
	Type        string   `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type" validate:"omitempty,oneof=string integer number boolean array object"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty" mapstructure:"default"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Enum        []string `json:"enum,omitempty" yaml:"enum,omitempty" mapstructure:"enum"`
	// Validate is a go-playground/validator tag applied to the raw value,
	// e.g. "numeric,min=1".
	Validate string `json:"validate,omitempty" yaml:"validate,omitempty" mapstructure:"validate"`
}

// Check validates the declaration itself.
func (s ArgSpec) Check() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid argument spec: %s", describeValidation(err))
	}
	return nil
}

// ArgSchema maps argument names to their specs.
type ArgSchema map[string]ArgSpec

// Names returns the argument names in sorted order.
func (s ArgSchema) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check validates every declaration in the schema.
func (s ArgSchema) Check() error {
	for _, name := range s.Names() {
		if err := s[name].Check(); err != nil {
			return fmt.Errorf("argument %q: %w", name, err)
		}
	}
	return nil
}

// checkValues enforces the schema against request values. Missing optional
// arguments with a Default are filled into values. The returned map is nil
// when every argument passes.
func (s ArgSchema) checkValues(values url.Values) map[string][]string {
	var details map[string][]string
	fail := func(name, tag string) {
		if details == nil {
			details = make(map[string][]string)
		}
		details[name] = append(details[name], tag)
	}

	for _, name := range s.Names() {
		spec := s[name]
		raw, present := values[name]
		if !present || len(raw) == 0 {
			switch {
			case spec.Required:
				fail(name, "required")
			case spec.Default != nil:
				values.Set(name, fmt.Sprint(spec.Default))
			}
			continue
		}

		value := raw[0]
		if len(spec.Enum) > 0 && !contains(spec.Enum, value) {
			fail(name, "enum")
		}
		if tag := typeTag(spec.Type); tag != "" {
			if err := validate.Var(value, tag); err != nil {
				fail(name, "type")
			}
		}
		if spec.Validate != "" {
			if err := validate.Var(value, spec.Validate); err != nil {
				for _, tags := range validationDetails(err) {
					for _, tag := range tags {
						fail(name, tag)
					}
				}
			}
		}
	}
	return details
}

func typeTag(t string) string {
	switch t {
	case "integer":
		return "number"
	case "number":
		return "numeric"
	case "boolean":
		return "boolean"
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
