package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startSpan opens a span around a routing operation when tracing is
// configured.
func (s *Server) startSpan(c *gin.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if s.tracer == nil {
		return c.Request.Context(), nil
	}
	return s.tracer.StartSpan(c.Request.Context(), name, attrs...)
}

// endSpan finishes a span, attaching outcome attributes.
func (s *Server) endSpan(span trace.Span, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	span.SetAttributes(attrs...)
	span.End()
}

// observeMatch records a match outcome when metrics are configured.
func (s *Server) observeMatch(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveMatch(outcome)
	}
}

// observeGenerate records a generation outcome when metrics are
// configured.
func (s *Server) observeGenerate(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveGenerate(outcome)
	}
}
