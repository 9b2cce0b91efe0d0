// Package observability provides logging, metrics, and tracing
// functionality for signpost.
//
// # Logging
//
// Structured logging backed by zap:
//
//	logger, err := observability.NewLogger(observability.LogConfig{
//	    Level:  "info",
//	    Format: "json",
//	})
//	logger.Info("route table loaded", observability.Int("routes", n))
//
// # Metrics
//
// Prometheus metrics with an isolated registry:
//
//	metrics := observability.NewMetrics("signpost")
//	metrics.ObserveRequest("GET", "orders.show", 200, elapsed)
//	http.Handle("/metrics", metrics.Handler())
//
// # Tracing
//
// OpenTelemetry tracing with an OTLP/gRPC exporter, no-op unless
// enabled:
//
//	tracer, err := observability.NewTracer(observability.TracerConfig{
//	    ServiceName:  "signpost",
//	    OTLPEndpoint: "localhost:4317",
//	    SamplingRate: 0.1,
//	    Enabled:      true,
//	})
package observability
