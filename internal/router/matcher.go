package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/getsignpost/signpost/internal/util"
)

var (
	// templateCharset is the set of characters a path template may
	// contain. It is a coarse safety net against unintended regex
	// metacharacters, not a full grammar validator.
	templateCharset = regexp.MustCompile(`^[A-Za-z0-9\-:./_{}()]*$`)

	// placeholderRegexp recognizes well-formed {identifier}
	// placeholders. Anything else between braces is left as literal
	// text.
	placeholderRegexp = regexp.MustCompile(`\{([A-Za-z0-9._-]+)\}`)
)

// paramClass is the character class a placeholder value may match:
// the same set allowed in placeholder identifiers.
const paramClass = `[A-Za-z0-9._-]+`

// Pattern is an immutable compiled path template. Placeholder
// identifiers may contain '.' and '-', which Go regexp group names do
// not allow, so captures are positional with a parallel name list.
type Pattern struct {
	template string
	re       *regexp.Regexp
	varNames []string
}

// Compiler translates one path template into a Pattern. The default
// is CompilePattern; a memoizing compiler can be injected via
// WithCompiler.
type Compiler func(template string, caseSensitive bool) (*Pattern, error)

// CompilePattern compiles a path template into an anchored matching
// expression. Every well-formed {identifier} placeholder becomes a
// capture group matching one or more identifier characters; literal
// spans are quoted. The expression is anchored at both ends, and
// matches case-insensitively unless caseSensitive is set.
//
// Templates containing characters outside the allowed set (letters,
// digits, and "- : . / _ { } ( )") fail with an error wrapping
// util.ErrInvalidPattern.
func CompilePattern(template string, caseSensitive bool) (*Pattern, error) {
	if !templateCharset.MatchString(template) {
		return nil, util.NewInvalidPatternError("", template,
			fmt.Errorf("template contains disallowed characters"))
	}

	var (
		expr     strings.Builder
		varNames []string
	)

	if !caseSensitive {
		expr.WriteString("(?i)")
	}
	expr.WriteString("^")

	end := 0
	for _, idx := range placeholderRegexp.FindAllStringSubmatchIndex(template, -1) {
		expr.WriteString(regexp.QuoteMeta(template[end:idx[0]]))
		expr.WriteString("(")
		expr.WriteString(paramClass)
		expr.WriteString(")")
		varNames = append(varNames, template[idx[2]:idx[3]])
		end = idx[1]
	}
	expr.WriteString(regexp.QuoteMeta(template[end:]))
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, util.NewInvalidPatternError("", template, err)
	}

	return &Pattern{
		template: template,
		re:       re,
		varNames: varNames,
	}, nil
}

// Match tests the pattern against a full request path. On success the
// returned map holds one entry per placeholder, keyed by identifier.
func (p *Pattern) Match(path string) (params map[string]string, matched bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}

	params = make(map[string]string, len(p.varNames))
	for i, name := range p.varNames {
		params[name] = m[i+1]
	}
	return params, true
}

// Template returns the raw path template the pattern was compiled from.
func (p *Pattern) Template() string {
	return p.template
}

// VarNames returns the placeholder identifiers in template order.
func (p *Pattern) VarNames() []string {
	names := make([]string, len(p.varNames))
	copy(names, p.varNames)
	return names
}
