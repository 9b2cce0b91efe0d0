package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getsignpost/signpost/internal/util"
)

func validRoutesConfig() *RoutesConfig {
	return &RoutesConfig{
		Router: RouterSettings{
			Prefix: "/api",
			GlobalParams: []GlobalParam{
				{Key: "tenant", Value: "acme"},
			},
		},
		Routes: []RouteConfig{
			{Name: "user", Path: "/users/{id}", Methods: []string{"GET"}},
			{Name: "admin", Path: "/admin/{section}", Host: "admin.example.com"},
		},
	}
}

func TestValidateRoutesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(*RoutesConfig)
		expectErr   bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(cfg *RoutesConfig) {},
		},
		{
			name: "no routes",
			mutate: func(cfg *RoutesConfig) {
				cfg.Routes = nil
			},
			expectErr:   true,
			errContains: "at least one route",
		},
		{
			name: "empty route name",
			mutate: func(cfg *RoutesConfig) {
				cfg.Routes[0].Name = ""
			},
			expectErr:   true,
			errContains: "invalid route name",
		},
		{
			name: "duplicate route name",
			mutate: func(cfg *RoutesConfig) {
				cfg.Routes[1].Name = cfg.Routes[0].Name
			},
			expectErr:   true,
			errContains: "duplicate route name",
		},
		{
			name: "empty path",
			mutate: func(cfg *RoutesConfig) {
				cfg.Routes[0].Path = ""
			},
			expectErr:   true,
			errContains: "cannot be empty",
		},
		{
			name: "unrooted path",
			mutate: func(cfg *RoutesConfig) {
				cfg.Routes[0].Path = "users/{id}"
			},
			expectErr:   true,
			errContains: "must start with /",
		},
		{
			name: "unknown method",
			mutate: func(cfg *RoutesConfig) {
				cfg.Routes[0].Methods = []string{"FETCH"}
			},
			expectErr:   true,
			errContains: "invalid method",
		},
		{
			name: "lowercase method accepted",
			mutate: func(cfg *RoutesConfig) {
				cfg.Routes[0].Methods = []string{"get", "post"}
			},
		},
		{
			name: "empty global param key",
			mutate: func(cfg *RoutesConfig) {
				cfg.Router.GlobalParams[0].Key = ""
			},
			expectErr:   true,
			errContains: "key cannot be empty",
		},
		{
			name: "unrooted prefix",
			mutate: func(cfg *RoutesConfig) {
				cfg.Router.Prefix = "api"
			},
			expectErr:   true,
			errContains: "prefix must start with /",
		},
		{
			name: "uncompilable template passes load validation",
			mutate: func(cfg *RoutesConfig) {
				cfg.Routes[0].Path = "/items/*"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validRoutesConfig()
			tt.mutate(cfg)

			err := ValidateRoutesConfig(cfg)
			if tt.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, util.ErrConfigInvalid)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRoutesConfig_Nil(t *testing.T) {
	t.Parallel()

	err := ValidateRoutesConfig(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrConfigInvalid)
}
