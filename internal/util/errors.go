// Package util provides utility functions and types shared across
// signpost packages.
//
// # Error Conventions
//
// This project follows a standardized error pattern across all packages:
//
//   - Sentinel errors (errors.New) for well-known, stable conditions
//     that callers check with errors.Is(). Example: ErrNotFound.
//   - Structured error types for context-rich errors that carry
//     additional fields (e.g., RouteNotFoundError, ConfigError). Each
//     type implements Error(), Unwrap() (if wrapping), and Is().
//   - fmt.Errorf with %w for ad-hoc wrapping that adds context to an
//     existing error without introducing a new type.
//
// All custom error types must implement:
//
//	Error() string           – human-readable message
//	Unwrap() error           – if the type wraps another error
//	Is(target error) bool    – for errors.Is() compatibility
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrInvalidPattern   = errors.New("invalid path pattern")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConfigInvalid    = errors.New("invalid configuration")
)

// ConfigError represents a configuration-related error.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error at %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ConfigError) Is(target error) bool {
	if target == ErrConfigInvalid {
		return true
	}
	_, ok := target.(*ConfigError)
	return ok || errors.Is(e.Cause, target)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// RouteNotFoundError reports that no declared route matched a request
// path. It maps to HTTP 404 at the transport layer.
type RouteNotFoundError struct {
	Path   string
	Method string
}

// Error implements the error interface.
func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("no route found for %s %s", e.Method, e.Path)
}

// Is checks if the error matches the target.
func (e *RouteNotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	_, ok := target.(*RouteNotFoundError)
	return ok
}

// NewRouteNotFoundError creates a new RouteNotFoundError.
func NewRouteNotFoundError(method, path string) *RouteNotFoundError {
	return &RouteNotFoundError{Path: path, Method: method}
}

// UnknownRouteError reports a URL generation request for a route name
// that is not declared in the route table.
type UnknownRouteError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("unknown route: %s", e.Name)
}

// Is checks if the error matches the target.
func (e *UnknownRouteError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	_, ok := target.(*UnknownRouteError)
	return ok
}

// NewUnknownRouteError creates a new UnknownRouteError.
func NewUnknownRouteError(name string) *UnknownRouteError {
	return &UnknownRouteError{Name: name}
}

// MethodNotAllowedError reports that the first route whose path and
// host matched a request does not allow the request's method. It maps
// to HTTP 405 at the transport layer.
type MethodNotAllowedError struct {
	Route   string
	Path    string
	Method  string
	Allowed []string
}

// Error implements the error interface.
func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s not allowed for route %s (allowed: %s)",
		e.Method, e.Route, strings.Join(e.Allowed, ", "))
}

// Is checks if the error matches the target.
func (e *MethodNotAllowedError) Is(target error) bool {
	if target == ErrMethodNotAllowed {
		return true
	}
	_, ok := target.(*MethodNotAllowedError)
	return ok
}

// NewMethodNotAllowedError creates a new MethodNotAllowedError.
func NewMethodNotAllowedError(route, path, method string, allowed []string) *MethodNotAllowedError {
	return &MethodNotAllowedError{Route: route, Path: path, Method: method, Allowed: allowed}
}

// InvalidPatternError reports that a route's declared path template
// cannot be compiled into a matching expression. It is never surfaced
// from matching or generation entry points; routes with invalid
// templates are skipped.
type InvalidPatternError struct {
	Route    string
	Template string
	Cause    error
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	if e.Route != "" {
		return fmt.Sprintf("route %s has invalid path template %q: %s", e.Route, e.Template, e.Cause)
	}
	return fmt.Sprintf("invalid path template %q: %s", e.Template, e.Cause)
}

// Unwrap returns the underlying error.
func (e *InvalidPatternError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *InvalidPatternError) Is(target error) bool {
	if target == ErrInvalidPattern {
		return true
	}
	_, ok := target.(*InvalidPatternError)
	return ok || errors.Is(e.Cause, target)
}

// NewInvalidPatternError creates a new InvalidPatternError.
func NewInvalidPatternError(route, template string, cause error) *InvalidPatternError {
	return &InvalidPatternError{Route: route, Template: template, Cause: cause}
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
