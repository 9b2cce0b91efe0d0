package util

import (
	"fmt"
	"strings"
)

// knownMethods is the set of HTTP method tokens accepted in route
// declarations.
var knownMethods = map[string]struct{}{
	"GET":     {},
	"HEAD":    {},
	"POST":    {},
	"PUT":     {},
	"PATCH":   {},
	"DELETE":  {},
	"CONNECT": {},
	"OPTIONS": {},
	"TRACE":   {},
}

// ValidateMethod validates a single HTTP method token. The token is
// uppercased before checking.
func ValidateMethod(method string) error {
	if method == "" {
		return fmt.Errorf("%w: method cannot be empty", ErrInvalidInput)
	}
	if _, ok := knownMethods[strings.ToUpper(method)]; !ok {
		return fmt.Errorf("%w: unknown HTTP method: %s", ErrInvalidInput, method)
	}
	return nil
}

// NormalizeMethods uppercases and de-duplicates a list of HTTP method
// tokens, preserving first-occurrence order.
func NormalizeMethods(methods []string) []string {
	if len(methods) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(methods))
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		upper := strings.ToUpper(m)
		if _, ok := seen[upper]; ok {
			continue
		}
		seen[upper] = struct{}{}
		out = append(out, upper)
	}
	return out
}

// ValidateRouteName validates a route name.
func ValidateRouteName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: route name cannot be empty", ErrInvalidInput)
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("%w: route name cannot contain whitespace: %q", ErrInvalidInput, name)
	}
	return nil
}

// ValidatePort validates a port number.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", port)
	}
	return nil
}
