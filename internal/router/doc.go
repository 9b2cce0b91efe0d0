// Package router implements signpost's route table: matching an
// incoming path, method, and host against an ordered set of named
// route definitions, and the inverse operation of rebuilding a
// concrete URL from a route name and parameter values.
//
// # Matching
//
// Path templates mix literal segments with {identifier} placeholders.
// Each template compiles into an anchored expression; placeholders
// capture one path parameter each. Matching walks the table in
// declaration order and the first structural match wins: a matching
// route that forbids the request method answers method-not-allowed
// without consulting later routes, so declaration order disambiguates
// method conflicts between overlapping patterns. Routes whose
// templates fail to compile are skipped, counted, and logged, never
// fatal. Matching is case-insensitive unless configured otherwise.
//
// # Generation
//
// Generation substitutes scalar parameters into their {key}
// placeholders and appends everything else as a query string in input
// order. A global path prefix and (deprecated) global parameters can
// be configured table-wide; absolute URLs use the request Context's
// scheme and host.
//
// # Usage
//
//	r := router.New(router.WithLogger(logger))
//	err := r.Add(router.Route{Name: "orders.show", Path: "/orders/{id}", Methods: []string{"GET"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := r.Match(router.Context{Host: "shop.test"}, "/orders/77", "GET")
//	if err == nil {
//	    // m.Route.Name == "orders.show", m.Params["id"] == "77"
//	}
//
//	link, err := r.Generate(router.Context{Scheme: "https", Host: "shop.test"},
//	    "orders.show", router.Params{router.P("id", "77")}, true)
//	// link == "https://shop.test/orders/77"
package router
