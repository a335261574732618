package api

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	version "github.com/hashicorp/go-version"
)

// validate is the package-wide validator instance. It carries the custom tags
// used for configuration, argument declarations and request arguments.
var validate *validator.Validate

var (
	identPattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	namespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*([./\\][A-Za-z_][A-Za-z0-9_-]*)*$`)
)

func init() {
	validate = validator.New()

	// goident: a valid Go identifier, used for generated class names.
	_ = validate.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return identPattern.MatchString(fl.Field().String())
	})

	// namespace: dotted or slashed identifier path such as "acme" or
	// "acme.shop".
	_ = validate.RegisterValidation("namespace", func(fl validator.FieldLevel) bool {
		return namespacePattern.MatchString(fl.Field().String())
	})

	// apiversion: "v1", "v2.1", "1.0.0"; anything hashicorp/go-version parses.
	_ = validate.RegisterValidation("apiversion", func(fl validator.FieldLevel) bool {
		_, err := version.NewVersion(fl.Field().String())
		return err == nil
	})
}

// Validator exposes the configured validator so hosts can reuse the custom
// tags when checking their own request structs.
func Validator() *validator.Validate {
	return validate
}

// validationDetails flattens validator errors into field -> failed tags.
func validationDetails(err error) map[string][]string {
	details := make(map[string][]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, ve := range verrs {
			field := strings.ToLower(ve.Field())
			details[field] = append(details[field], ve.Tag())
		}
	}
	return details
}

// describeValidation renders validator errors for wrapping into sentinel
// errors.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		if ve.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", strings.ToLower(ve.Field()), ve.Tag(), ve.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(ve.Field()), ve.Tag()))
	}
	return strings.Join(parts, "; ")
}
