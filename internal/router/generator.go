package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/getsignpost/signpost/internal/util"
)

// Generate reconstructs a concrete URL for the named route. Scalar
// parameters replace their literal {key} placeholder in the template;
// every parameter not consumed by a substitution (sequences always,
// plus scalars without a matching placeholder) is appended as a query
// string in input order. With absolute set, the result is prefixed
// with the context's scheme and host.
//
// When the table carries a global prefix and the route does not opt
// out, the prefix is prepended to the raw template and the table's
// global parameters are merged in as extra inputs (explicit parameters
// win on key conflicts).
//
// Generation is success-or-failure: an unknown name yields an
// UnknownRouteError, never a partially substituted path.
func (r *Router) Generate(ctx Context, name string, params Params, absolute bool) (string, error) {
	route, ok := r.byName[name]
	if !ok {
		return "", util.NewUnknownRouteError(name)
	}

	path := route.Path
	inputs := params
	if r.prefix != "" && !route.IgnorePrefix {
		path = r.prefix + path
		inputs = mergeParams(params, r.globalParams)
	}

	var residual Params
	for _, p := range inputs {
		if _, isSeq := sequenceValues(p.Value); isSeq {
			residual = append(residual, p)
			continue
		}

		value := fmt.Sprint(p.Value)
		substituted := strings.ReplaceAll(path, "{"+p.Key+"}", value)
		if substituted == path {
			residual = append(residual, p)
			continue
		}
		path = substituted
	}

	if len(residual) > 0 {
		path += "?" + encodeQuery(residual)
	}

	if absolute {
		path = ctx.SchemeAndHost() + path
	}

	return path, nil
}

// mergeParams appends the extras whose keys are absent from params,
// preserving the order of both lists.
func mergeParams(params, extras Params) Params {
	if len(extras) == 0 {
		return params
	}

	merged := make(Params, len(params), len(params)+len(extras))
	copy(merged, params)
	for _, extra := range extras {
		if _, exists := params.Get(extra.Key); exists {
			continue
		}
		merged = append(merged, extra)
	}
	return merged
}

// sequenceValues reports whether the value is a sequence and, if so,
// returns its elements formatted as strings.
func sequenceValues(value any) ([]string, bool) {
	switch seq := value.(type) {
	case []string:
		return seq, true
	case []any:
		out := make([]string, len(seq))
		for i, v := range seq {
			out[i] = fmt.Sprint(v)
		}
		return out, true
	default:
		return nil, false
	}
}

// encodeQuery URL-encodes the residual parameters, preserving input
// order. Sequence values encode as repeated keys.
func encodeQuery(residual Params) string {
	var b strings.Builder
	for _, p := range residual {
		values, isSeq := sequenceValues(p.Value)
		if !isSeq {
			values = []string{fmt.Sprint(p.Value)}
		}
		for _, v := range values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(p.Key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}
