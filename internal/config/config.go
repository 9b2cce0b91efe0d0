// Package config provides configuration management for signpost.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/getsignpost/signpost/internal/util"
)

// Config is the service configuration.
type Config struct {
	// ServiceName identifies the service in logs, metrics, and traces.
	ServiceName string `yaml:"serviceName,omitempty" json:"serviceName,omitempty"`

	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server,omitempty" json:"server,omitempty"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log,omitempty" json:"log,omitempty"`

	// Tracing configures OpenTelemetry tracing.
	Tracing TracingConfig `yaml:"tracing,omitempty" json:"tracing,omitempty"`

	// RoutesFile is the path to the route table definition.
	RoutesFile string `yaml:"routesFile,omitempty" json:"routesFile,omitempty"`

	// PatternCacheSize bounds the compiled pattern cache. Zero uses
	// the default bound; negative disables the cache entirely.
	PatternCacheSize int `yaml:"patternCacheSize,omitempty" json:"patternCacheSize,omitempty"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Address      string   `yaml:"address,omitempty" json:"address,omitempty"`
	Port         int      `yaml:"port,omitempty" json:"port,omitempty"`
	ReadTimeout  Duration `yaml:"readTimeout,omitempty" json:"readTimeout,omitempty"`
	WriteTimeout Duration `yaml:"writeTimeout,omitempty" json:"writeTimeout,omitempty"`
	IdleTimeout  Duration `yaml:"idleTimeout,omitempty" json:"idleTimeout,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// TracingConfig holds tracing settings.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	OTLPEndpoint string  `yaml:"otlpEndpoint,omitempty" json:"otlpEndpoint,omitempty"`
	SamplingRate float64 `yaml:"samplingRate,omitempty" json:"samplingRate,omitempty"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ServiceName: "signpost",
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  Duration(30 * time.Second),
			WriteTimeout: Duration(30 * time.Second),
			IdleTimeout:  Duration(120 * time.Second),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Tracing: TracingConfig{
			SamplingRate: 0.1,
		},
		RoutesFile: "configs/routes.yaml",
	}
}

// ApplyEnvOverrides overlays environment variables onto the config.
// Recognized variables: SIGNPOST_PORT, SIGNPOST_LOG_LEVEL,
// SIGNPOST_LOG_FORMAT, SIGNPOST_ROUTES_FILE, SIGNPOST_OTLP_ENDPOINT.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SIGNPOST_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("SIGNPOST_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SIGNPOST_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("SIGNPOST_ROUTES_FILE"); v != "" {
		c.RoutesFile = v
	}
	if v := os.Getenv("SIGNPOST_OTLP_ENDPOINT"); v != "" {
		c.Tracing.OTLPEndpoint = v
	}
}

// Validate checks the service configuration.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return util.NewConfigError("serviceName", "service name cannot be empty")
	}
	if err := util.ValidatePort(c.Server.Port); err != nil {
		return util.NewConfigErrorWithCause("server.port", "invalid port", err)
	}
	if c.RoutesFile == "" {
		return util.NewConfigError("routesFile", "routes file path cannot be empty")
	}
	if c.Tracing.Enabled && c.Tracing.OTLPEndpoint == "" {
		return util.NewConfigError("tracing.otlpEndpoint", "OTLP endpoint required when tracing is enabled")
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return util.NewConfigError("tracing.samplingRate", "sampling rate must be between 0 and 1")
	}
	return nil
}
