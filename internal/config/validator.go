package config

import (
	"fmt"
	"strings"

	"github.com/getsignpost/signpost/internal/util"
)

// ValidateRoutesConfig validates a route table definition. Names must
// be unique and non-empty, paths must be rooted, and method tokens
// must be known HTTP methods.
//
// Path templates are deliberately not validated here: a route with an
// uncompilable template is skipped during matching rather than
// rejected at load time, and surfaces through the router's
// VerifyTemplates diagnostic instead.
func ValidateRoutesConfig(cfg *RoutesConfig) error {
	if cfg == nil {
		return util.NewConfigError("", "routes config is nil")
	}
	if len(cfg.Routes) == 0 {
		return util.NewConfigError("routes", "at least one route must be declared")
	}

	seen := make(map[string]struct{}, len(cfg.Routes))
	for i, route := range cfg.Routes {
		field := fmt.Sprintf("routes[%d]", i)

		if err := util.ValidateRouteName(route.Name); err != nil {
			return util.NewConfigErrorWithCause(field+".name", "invalid route name", err)
		}
		if _, dup := seen[route.Name]; dup {
			return util.NewConfigError(field+".name",
				fmt.Sprintf("duplicate route name: %s", route.Name))
		}
		seen[route.Name] = struct{}{}

		if route.Path == "" {
			return util.NewConfigError(field+".path", "path template cannot be empty")
		}
		if !strings.HasPrefix(route.Path, "/") {
			return util.NewConfigError(field+".path",
				fmt.Sprintf("path template must start with /: %s", route.Path))
		}

		for _, method := range route.Methods {
			if err := util.ValidateMethod(method); err != nil {
				return util.NewConfigErrorWithCause(field+".methods", "invalid method", err)
			}
		}
	}

	for i, gp := range cfg.Router.GlobalParams {
		if gp.Key == "" {
			return util.NewConfigError(fmt.Sprintf("router.globalParams[%d].key", i),
				"global parameter key cannot be empty")
		}
	}

	if cfg.Router.Prefix != "" && !strings.HasPrefix(cfg.Router.Prefix, "/") {
		return util.NewConfigError("router.prefix",
			fmt.Sprintf("prefix must start with /: %s", cfg.Router.Prefix))
	}

	return nil
}
