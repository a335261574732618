package api

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PermissionsMethod is the name of the single permission callback every
// generated controller exposes.
const PermissionsMethod = "permissions"

// Capitalize upper-cases the first rune of s and leaves the rest untouched,
// so "orders" becomes "Orders" and "orderItems" becomes "OrderItems".
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ClassName returns the fully-qualified controller name for an endpoint.
func ClassName(namespace, endpoint string) string {
	return namespace + "." + Capitalize(endpoint)
}

// CallbackName returns the callback method name for an HTTP method, e.g.
// ("POST", "orders") -> "postOrders".
func CallbackName(method, endpoint string) string {
	return strings.ToLower(method) + Capitalize(endpoint)
}

// RouteNamespace joins the class namespace and API version into the
// namespace the host groups routes under.
func RouteNamespace(namespace, version string) string {
	return namespace + "/" + version
}

// Reference identifies a handler by controller class and method name.
type Reference struct {
	Class  string `json:"class" yaml:"class"`
	Method string `json:"method" yaml:"method"`
}

// String renders the reference as Class::method.
func (r Reference) String() string {
	return r.Class + "::" + r.Method
}

// IsZero reports whether r is the empty reference.
func (r Reference) IsZero() bool {
	return r.Class == "" && r.Method == ""
}

// packageName derives a Go package clause from a class namespace by taking
// its last dotted or slashed segment.
func packageName(namespace string) string {
	seg := namespace
	if i := strings.LastIndexAny(seg, "./\\"); i >= 0 {
		seg = seg[i+1:]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(seg) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "endpoints" + name
	}
	return name
}
