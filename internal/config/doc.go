// Package config provides configuration management for signpost.
//
// Two configuration surfaces exist:
//
//   - Config: the service configuration (listener, logging, tracing,
//     route table location), loaded once at startup with environment
//     overrides.
//   - RoutesConfig: the route table definition, an ordered list of
//     named route declarations plus table-wide matching and generation
//     settings. It can be hot-reloaded through Watcher.
//
// YAML values support ${VAR} and ${VAR:-default} environment variable
// substitution.
//
// # Usage
//
//	cfg, err := config.LoadConfig("configs/signpost.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	routes, err := config.LoadRoutesConfig(cfg.RoutesFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := config.ValidateRoutesConfig(routes); err != nil {
//	    log.Fatal(err)
//	}
//	r, err := routes.BuildRouter(logger)
package config
