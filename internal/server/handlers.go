package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/getsignpost/signpost/internal/router"
	"github.com/getsignpost/signpost/internal/server/middleware"
	"github.com/getsignpost/signpost/internal/util"
)

// Match outcome labels for metrics.
const (
	outcomeMatched          = "matched"
	outcomeNotFound         = "not_found"
	outcomeMethodNotAllowed = "method_not_allowed"
	outcomeGenerated        = "generated"
	outcomeUnknownRoute     = "unknown_route"
)

// matchResponse is the JSON body for a successful routing decision.
type matchResponse struct {
	Route   string            `json:"route"`
	Path    string            `json:"path"`
	Methods []string          `json:"methods,omitempty"`
	Host    string            `json:"host,omitempty"`
	Params  map[string]string `json:"params"`
}

// routeInfo is the JSON shape of one declared route.
type routeInfo struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Methods      []string `json:"methods,omitempty"`
	Host         string   `json:"host,omitempty"`
	IgnorePrefix bool     `json:"ignorePrefix,omitempty"`
}

// generateRequest is the JSON body for URL generation.
type generateRequest struct {
	Name     string          `json:"name" binding:"required"`
	Params   []generateParam `json:"params"`
	Absolute bool            `json:"absolute"`

	// Scheme and Host override the request-derived context for
	// absolute generation.
	Scheme string `json:"scheme"`
	Host   string `json:"host"`
}

// generateParam is one ordered generation input. Value may be a
// scalar or an array.
type generateParam struct {
	Key   string `json:"key" binding:"required"`
	Value any    `json:"value"`
}

// registerHandlers wires all endpoints onto the engine.
func (s *Server) registerHandlers() {
	s.engine.GET("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	v1 := s.engine.Group("/v1")
	v1.GET("/routes", s.handleListRoutes)
	v1.GET("/match", s.handleMatch)
	v1.POST("/generate", s.handleGenerate)

	// Any other request is itself a routing question: answer with the
	// decision for its own path, method, and host.
	s.engine.NoRoute(s.handleResolve)
}

// handleHealth answers liveness probes.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleListRoutes lists the declared routes in declaration order.
func (s *Server) handleListRoutes(c *gin.Context) {
	routes := s.holder.Load().Routes()
	out := make([]routeInfo, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeInfo{
			Name:         r.Name,
			Path:         r.Path,
			Methods:      r.Methods,
			Host:         r.Host,
			IgnorePrefix: r.IgnorePrefix,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

// handleMatch answers an explicit routing question given by query
// parameters: path (required), method (default GET), host (default:
// the caller's host).
func (s *Server) handleMatch(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter path is required"})
		return
	}

	method := c.DefaultQuery("method", http.MethodGet)

	ctx := router.ContextFromRequest(c.Request)
	if host := c.Query("host"); host != "" {
		ctx.Host = host
	}

	s.writeDecision(c, ctx, path, method)
}

// handleResolve answers the routing question posed by the incoming
// request itself.
func (s *Server) handleResolve(c *gin.Context) {
	s.writeDecision(c, router.ContextFromRequest(c.Request), c.Request.URL.Path, c.Request.Method)
}

// writeDecision runs a match and renders the decision.
func (s *Server) writeDecision(c *gin.Context, ctx router.Context, path, method string) {
	spanCtx, span := s.startSpan(c, "router.match",
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	)
	c.Request = c.Request.WithContext(spanCtx)

	match, err := s.holder.Load().Match(ctx, path, method)
	if err != nil {
		outcome := outcomeNotFound
		if errors.Is(err, util.ErrMethodNotAllowed) {
			outcome = outcomeMethodNotAllowed
		}
		s.observeMatch(outcome)
		s.endSpan(span, attribute.String("signpost.outcome", outcome))

		status := util.StatusForError(err)
		body := gin.H{"error": err.Error()}
		var mna *util.MethodNotAllowedError
		if errors.As(err, &mna) {
			body["allowed"] = mna.Allowed
			middleware.SetMatchedRoute(c, mna.Route)
		}
		c.JSON(status, body)
		return
	}

	s.observeMatch(outcomeMatched)
	s.endSpan(span, attribute.String("signpost.route", match.Route.Name))
	middleware.SetMatchedRoute(c, match.Route.Name)

	c.JSON(http.StatusOK, matchResponse{
		Route:   match.Route.Name,
		Path:    match.Route.Path,
		Methods: match.Route.Methods,
		Host:    match.Route.Host,
		Params:  match.Params,
	})
}

// handleGenerate rebuilds a URL from a route name and ordered
// parameters.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx := router.ContextFromRequest(c.Request)
	if req.Scheme != "" {
		ctx.Scheme = req.Scheme
	}
	if req.Host != "" {
		ctx.Host = req.Host
	}

	params := make(router.Params, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, router.P(p.Key, p.Value))
	}

	spanCtx, span := s.startSpan(c, "router.generate",
		attribute.String("signpost.route", req.Name),
	)
	c.Request = c.Request.WithContext(spanCtx)

	url, err := s.holder.Load().Generate(ctx, req.Name, params, req.Absolute)
	if err != nil {
		s.observeGenerate(outcomeUnknownRoute)
		s.endSpan(span, attribute.String("signpost.outcome", outcomeUnknownRoute))
		c.JSON(util.StatusForError(err), gin.H{"error": err.Error()})
		return
	}

	s.observeGenerate(outcomeGenerated)
	s.endSpan(span, attribute.String("signpost.outcome", outcomeGenerated))
	c.JSON(http.StatusOK, gin.H{"url": url})
}
