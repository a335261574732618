package a

import "net/http"

type Reference struct {
	Class  string
	Method string
}

type table struct{}

func (table) BindCallback(Reference, func(*http.Request) (any, error)) {}
func (table) BindPermission(Reference, func(*http.Request) bool)       {}

var handlers table

type Orders struct{}

func (Orders) getOrders(*http.Request) (any, error)  { return nil, nil }
func (Orders) postOrders(*http.Request) (any, error) { return nil, nil }
func (Orders) listOrders(*http.Request) (any, error) { return nil, nil }
func (Orders) permissions(*http.Request) bool        { return true }
func (Orders) allow(*http.Request) bool              { return true }

func init() {
	c := Orders{}
	handlers.BindCallback(Reference{Class: "acme.Orders", Method: "getOrders"}, c.getOrders)
	handlers.BindCallback(Reference{Class: "acme.Orders", Method: "getOrders"}, c.getOrders) // want "acme.Orders::getOrders is bound more than once"
	handlers.BindCallback(Reference{Class: "acme.Orders", Method: "postOrders"}, c.getOrders) // want "reference method \"postOrders\" is bound to getOrders"
	handlers.BindCallback(Reference{Class: "acme.Orders", Method: "listOrders"}, c.listOrders) // want "callback \"listOrders\" does not start with a lower-case HTTP method"
	handlers.BindCallback(Reference{Class: "Orders", Method: "postOrders"}, c.postOrders) // want "class \"Orders\" is not namespace-qualified"
	handlers.BindPermission(Reference{Class: "acme.Orders", Method: "permissions"}, c.permissions)
	handlers.BindPermission(Reference{Class: "shop.Orders", Method: "allow"}, c.allow) // want "permission reference must name \"permissions\", got \"allow\""
}
