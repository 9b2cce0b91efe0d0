package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getsignpost/signpost/internal/config"
	"github.com/getsignpost/signpost/internal/observability"
	"github.com/getsignpost/signpost/internal/router"
	"github.com/getsignpost/signpost/internal/server"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("SIGNPOST_TEST_ENV", "from-env")

	assert.Equal(t, "from-env", getEnvOrDefault("SIGNPOST_TEST_ENV", "fallback"))
	assert.Equal(t, "fallback", getEnvOrDefault("SIGNPOST_TEST_ENV_UNSET", "fallback"))
}

func TestRouterOptions(t *testing.T) {
	t.Parallel()

	t.Run("cache enabled by default", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		assert.Len(t, routerOptions(cfg), 1)
	})

	t.Run("negative size disables cache", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.PatternCacheSize = -1
		assert.Empty(t, routerOptions(cfg))
	})
}

func TestApplication_BuildTable(t *testing.T) {
	t.Parallel()

	app := &application{logger: observability.NopLogger()}

	routes := &config.RoutesConfig{
		Routes: []config.RouteConfig{
			{Name: "user", Path: "/users/{id}", Methods: []string{"GET"}},
			{Name: "broken", Path: "/items/*"},
		},
	}

	table, err := app.buildTable(routes)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	match, err := table.Match(router.Context{}, "/users/42", "GET")
	require.NoError(t, err)
	assert.Equal(t, "user", match.Route.Name)
}

func TestApplication_OnRoutesReload(t *testing.T) {
	t.Parallel()

	app := &application{logger: observability.NopLogger()}

	initial := &config.RoutesConfig{
		Routes: []config.RouteConfig{{Name: "a", Path: "/a"}},
	}
	table, err := app.buildTable(initial)
	require.NoError(t, err)
	app.holder = server.NewTableHolder(table)

	updated := &config.RoutesConfig{
		Routes: []config.RouteConfig{
			{Name: "a", Path: "/a"},
			{Name: "b", Path: "/b"},
		},
	}
	app.onRoutesReload(updated)
	assert.Equal(t, 2, app.holder.Load().Len())

	// A broken definition keeps the previous table.
	broken := &config.RoutesConfig{
		Routes: []config.RouteConfig{
			{Name: "dup", Path: "/x"},
			{Name: "dup", Path: "/y"},
		},
	}
	app.onRoutesReload(broken)
	assert.Equal(t, 2, app.holder.Load().Len())
}

func TestInitApplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	routesPath := filepath.Join(dir, "routes.yaml")
	require.NoError(t, os.WriteFile(routesPath, []byte(`
routes:
  - name: user
    path: /users/{id}
`), 0644))

	cfg := config.DefaultConfig()
	cfg.RoutesFile = routesPath

	app, err := initApplication(cfg, observability.NopLogger())
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.NotNil(t, app.holder)
	assert.NotNil(t, app.watcher)
	assert.NotNil(t, app.server)
	assert.Equal(t, 1, app.holder.Load().Len())
}

func TestInitApplication_MissingRoutesFile(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.RoutesFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := initApplication(cfg, observability.NopLogger())
	assert.Error(t, err)
}
