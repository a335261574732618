// Package api declares REST endpoints for a host router and scaffolds their
// controller files.
//
// An endpoint is a path segment plus the HTTP methods it accepts. For every
// method a Generator derives, by a fixed naming convention, a callback
// reference (<namespace>.<Endpoint>::<method><Endpoint>) and a permission
// reference (<namespace>.<Endpoint>::permissions), resolves both through a
// ClassResolver and registers the route under "<namespace>/<version>":
//
//	cfg := api.NewConfig(api.WithNamespace("acme"), api.WithVersion("v2"))
//	gen, err := api.NewGenerator("orders", []string{"GET", "POST"}, cfg)
//	if err != nil {
//		return err
//	}
//	if _, err := gen.GenerateScaffold(); err != nil {
//		return err
//	}
//	return gen.Register(router)
//
// GenerateScaffold writes <outputPath>/Orders.go once. The generated
// controller binds getOrders, postOrders and permissions into
// DefaultHandlers from its init function, so a host that imports the
// controller package can Register without further wiring.
package api
