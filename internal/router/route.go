package router

import (
	"net/http"
	"strings"
)

// Route is a declarative route definition. A Route carries no match
// state; match results are returned as a separate Match value so the
// same table can serve concurrent lookups.
type Route struct {
	// Name uniquely identifies the route within its table.
	Name string

	// Path is the path template. Literal segments mix with
	// {identifier} placeholders, where the identifier uses letters,
	// digits, '.', '_' and '-'.
	Path string

	// Methods is the set of allowed HTTP methods, uppercase. Empty
	// means any method is allowed.
	Methods []string

	// Host restricts the route to an exact host. Empty means any host.
	Host string

	// IgnorePrefix opts the route out of the table's global path
	// prefix during URL generation.
	IgnorePrefix bool
}

// allows reports whether the route permits the given uppercase method.
func (r *Route) allows(method string) bool {
	if len(r.Methods) == 0 {
		return true
	}
	for _, m := range r.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// Match is the result of a successful route lookup: the matched route
// and the parameter values extracted from the request path.
type Match struct {
	Route  *Route
	Params map[string]string
}

// Param is a single named generation input. Value may be a scalar
// (string, number, bool) or a sequence ([]string or []any); sequences
// are never substituted in-path and always become query parameters.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of generation inputs. Order is significant:
// residual parameters are appended to the query string in input order.
type Params []Param

// P is a shorthand Param constructor.
func P(key string, value any) Param {
	return Param{Key: key, Value: value}
}

// Get returns the first value for key.
func (ps Params) Get(key string) (any, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Context is a read-only snapshot of the ambient request environment:
// the current host and scheme. It can be constructed explicitly for
// CLI or worker invocations, or derived from an inbound request.
type Context struct {
	Scheme string
	Host   string
}

// SchemeAndHost returns the scheme://host composite used for absolute
// URL generation. The scheme defaults to http when unset.
func (c Context) SchemeAndHost() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + c.Host
}

// ContextFromRequest derives a Context from an inbound HTTP request,
// honoring X-Forwarded-Proto and X-Forwarded-Host when present.
func ContextFromRequest(req *http.Request) Context {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if proto := req.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(proto)
	}

	host := req.Host
	if forwarded := req.Header.Get("X-Forwarded-Host"); forwarded != "" {
		host = forwarded
	}

	return Context{Scheme: scheme, Host: host}
}
