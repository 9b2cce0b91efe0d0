package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getsignpost/signpost/internal/observability"
	"github.com/getsignpost/signpost/internal/util"
)

// Router is an ordered, name-indexed route table. Declaration order is
// match priority: the first route whose compiled template structurally
// matches the request path wins the whole evaluation.
//
// A Router is immutable once built: Add all routes first, then share
// it freely. Match and Generate never mutate the table, so a built
// Router is safe for concurrent use. Hot reload is done by building a
// fresh Router and swapping the reference.
type Router struct {
	routes  []*Route
	byName  map[string]*Route
	compile Compiler

	caseSensitive bool
	prefix        string
	globalParams  Params
	logger        observability.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithCaseSensitive enables case-sensitive path matching. The default
// is case-insensitive.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(r *Router) {
		r.caseSensitive = caseSensitive
	}
}

// WithGlobalPrefix sets a path prefix prepended during URL generation
// to every route that does not opt out via IgnorePrefix.
func WithGlobalPrefix(prefix string) Option {
	return func(r *Router) {
		r.prefix = prefix
	}
}

// WithGlobalParams sets generation inputs merged into every generation
// call that applies the global prefix.
//
// Deprecated: declare parameters per generation call instead. Retained
// for configurations that still carry a global parameter mapping.
func WithGlobalParams(params Params) Option {
	return func(r *Router) {
		r.globalParams = params
	}
}

// WithLogger sets the logger used for match diagnostics, notably the
// otherwise silent skip of routes with invalid templates.
func WithLogger(logger observability.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithCompiler replaces the pattern compiler. Matching compiles each
// candidate template on demand; callers that want memoization can
// inject a CachedCompiler here.
func WithCompiler(compile Compiler) Option {
	return func(r *Router) {
		r.compile = compile
	}
}

// New creates an empty Router.
func New(opts ...Option) *Router {
	r := &Router{
		byName:  make(map[string]*Route),
		compile: CompilePattern,
		logger:  observability.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add appends a route to the table, preserving declaration order.
// Route names must be unique; methods are uppercased and de-duplicated.
// The template itself is not validated here: an uncompilable template
// makes the route unmatchable, not the table invalid.
func (r *Router) Add(route Route) error {
	if err := util.ValidateRouteName(route.Name); err != nil {
		return err
	}
	if _, exists := r.byName[route.Name]; exists {
		return fmt.Errorf("duplicate route name: %s", route.Name)
	}

	route.Methods = util.NormalizeMethods(route.Methods)
	added := &route
	r.routes = append(r.routes, added)
	r.byName[route.Name] = added
	return nil
}

// Match finds the first route matching path and method under the given
// request context.
//
// Routes are evaluated in declaration order. A route is skipped when
// its template does not compile (counted and logged, never fatal),
// when its compiled expression does not match the path, or when its
// declared host differs from the context host. The first route that
// clears all three checks decides the outcome: if it declares methods
// and the request method is not among them, the result is a
// MethodNotAllowedError even if a later route would have accepted the
// method. On success a fresh Match value carries the extracted
// parameters. When no route structurally matches, the result is a
// RouteNotFoundError.
func (r *Router) Match(ctx Context, path, method string) (*Match, error) {
	method = strings.ToUpper(method)

	for _, route := range r.routes {
		pattern, err := r.compile(route.Path, r.caseSensitive)
		if err != nil {
			routerMetrics().invalidTemplateSkips.Inc()
			r.logger.Debug("skipping route with invalid path template",
				observability.String("route", route.Name),
				observability.String("template", route.Path),
				observability.Error(err),
			)
			continue
		}

		params, ok := pattern.Match(path)
		if !ok {
			continue
		}

		if route.Host != "" && route.Host != ctx.Host {
			continue
		}

		if !route.allows(method) {
			return nil, util.NewMethodNotAllowedError(route.Name, path, method, route.Methods)
		}

		return &Match{Route: route, Params: params}, nil
	}

	return nil, util.NewRouteNotFoundError(method, path)
}

// MatchRequest adapts an inbound HTTP request to Match, reading only
// the request path, method, and host context.
func (r *Router) MatchRequest(req *http.Request) (*Match, error) {
	return r.Match(ContextFromRequest(req), req.URL.Path, req.Method)
}

// Lookup returns the route declared under name.
func (r *Router) Lookup(name string) (*Route, bool) {
	route, ok := r.byName[name]
	return route, ok
}

// Routes returns the routes in declaration order.
func (r *Router) Routes() []*Route {
	routes := make([]*Route, len(r.routes))
	copy(routes, r.routes)
	return routes
}

// Len returns the number of declared routes.
func (r *Router) Len() int {
	return len(r.routes)
}

// CaseSensitive reports whether path matching is case-sensitive.
func (r *Router) CaseSensitive() bool {
	return r.caseSensitive
}

// VerifyTemplates compiles every declared template and returns one
// error per route that would be silently skipped during matching.
// Intended as a startup diagnostic: a misconfigured route otherwise
// disappears from matching without a trace.
func (r *Router) VerifyTemplates() []error {
	var errs []error
	for _, route := range r.routes {
		if _, err := r.compile(route.Path, r.caseSensitive); err != nil {
			var ipe *util.InvalidPatternError
			if errors.As(err, &ipe) {
				err = ipe.Cause
			}
			errs = append(errs, util.NewInvalidPatternError(route.Name, route.Path, err))
		}
	}
	return errs
}
