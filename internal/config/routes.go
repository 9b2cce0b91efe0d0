package config

import (
	"github.com/getsignpost/signpost/internal/observability"
	"github.com/getsignpost/signpost/internal/router"
)

// RoutesConfig is the route table definition loaded from YAML.
type RoutesConfig struct {
	Router RouterSettings `yaml:"router,omitempty" json:"router,omitempty"`
	Routes []RouteConfig  `yaml:"routes" json:"routes"`
}

// RouterSettings holds table-wide matching and generation settings.
type RouterSettings struct {
	// CaseSensitive enables case-sensitive path matching. Matching is
	// case-insensitive by default.
	CaseSensitive bool `yaml:"caseSensitive,omitempty" json:"caseSensitive,omitempty"`

	// Prefix is a global path prefix prepended during URL generation
	// to routes that do not opt out.
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty"`

	// GlobalParams are generation inputs merged into every generation
	// call that applies the prefix. Order is preserved.
	//
	// Deprecated: declare parameters per generation call instead.
	GlobalParams []GlobalParam `yaml:"globalParams,omitempty" json:"globalParams,omitempty"`
}

// GlobalParam is one entry of the deprecated global parameter mapping.
type GlobalParam struct {
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

// RouteConfig is one route declaration. Declaration order in the YAML
// list is match priority.
type RouteConfig struct {
	Name         string   `yaml:"name" json:"name"`
	Path         string   `yaml:"path" json:"path"`
	Methods      []string `yaml:"methods,omitempty" json:"methods,omitempty"`
	Host         string   `yaml:"host,omitempty" json:"host,omitempty"`
	IgnorePrefix bool     `yaml:"ignorePrefix,omitempty" json:"ignorePrefix,omitempty"`
}

// BuildRouter constructs a router from the route table definition,
// preserving declaration order.
func (rc *RoutesConfig) BuildRouter(logger observability.Logger, opts ...router.Option) (*router.Router, error) {
	base := []router.Option{
		router.WithCaseSensitive(rc.Router.CaseSensitive),
		router.WithLogger(logger),
	}
	if rc.Router.Prefix != "" {
		base = append(base, router.WithGlobalPrefix(rc.Router.Prefix))
	}
	if len(rc.Router.GlobalParams) > 0 {
		params := make(router.Params, 0, len(rc.Router.GlobalParams))
		for _, gp := range rc.Router.GlobalParams {
			params = append(params, router.P(gp.Key, gp.Value))
		}
		base = append(base, router.WithGlobalParams(params))
	}

	r := router.New(append(base, opts...)...)
	for _, route := range rc.Routes {
		err := r.Add(router.Route{
			Name:         route.Name,
			Path:         route.Path,
			Methods:      route.Methods,
			Host:         route.Host,
			IgnorePrefix: route.IgnorePrefix,
		})
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}
