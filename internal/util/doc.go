// Package util provides utility functions and types shared across
// signpost packages.
//
// # Error Types
//
// Structured error types for consistent error handling:
//
//   - RouteNotFoundError: no route matched a request path
//   - UnknownRouteError: URL generation against an undeclared name
//   - MethodNotAllowedError: matched route forbids the request method
//   - InvalidPatternError: a path template failed to compile
//   - ConfigError: configuration validation errors
//   - Common sentinel errors: ErrNotFound, ErrMethodNotAllowed, etc.
//
// # HTTP Utilities
//
// StatusForError maps routing errors to HTTP status codes, and a
// response writer wrapper captures status codes for middleware:
//
//	w := util.NewStatusCapturingResponseWriter(responseWriter)
//	handler.ServeHTTP(w, r)
//	statusCode := w.StatusCode
//
// # Validation
//
// Input validation helpers for route names, HTTP methods, and ports:
//
//	err := util.ValidateMethod("GET")
//	err := util.ValidateRouteName("orders.show")
package util
