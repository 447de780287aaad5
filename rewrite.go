package waymark

import (
	"regexp"
	"strings"
)

// identifierPattern is the regexp form of the opaque identifier shape checked
// by IsIdentifier, for use inside pattern rules.
const identifierPattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// PatternRule recognizes one structural path convention and rewrites it.
// Rules are tried in priority order; the first matching rule wins.
type PatternRule struct {
	re      *regexp.Regexp
	rewrite func(submatches []string) string
}

// Apply runs the rule against the given path. It returns false when the rule
// does not match.
func (r PatternRule) Apply(p string) (string, bool) {
	m := r.re.FindStringSubmatch(p)
	if m == nil {
		return "", false
	}
	return r.rewrite(m), true
}

// Action keywords conventionally used as the leaf segment of entity routes.
var (
	localizedActions = map[string]string{
		"edit":   "editar",
		"detail": "detalhes",
		"create": "novo",
	}
	canonicalActions = invertActions(localizedActions)
)

func invertActions(actions map[string]string) map[string]string {
	inverted := make(map[string]string, len(actions))
	for k, v := range actions {
		inverted[v] = k
	}
	return inverted
}

// ActionRules builds the pattern rules that normalize a conventional action
// keyword at the end of a path when no declared ancestor mapping exists at
// all. Only the action token is substituted; the preceding entity segments
// are deliberately left as-is, even if they are still in the source
// vocabulary. Fully translating nested entity routes is the prefix
// resolver's job, which takes precedence over this layer.
func ActionRules(dir Direction) []PatternRule {
	actions := localizedActions
	if dir == ToCanonical {
		actions = canonicalActions
	}

	keywords := make([]string, 0, len(actions))
	for k := range actions {
		keywords = append(keywords, k)
	}
	alt := "(" + strings.Join(keywords, "|") + ")"
	seg := `([^/]+)`
	id := `(` + identifierPattern + `)`

	// Identifier-bearing forms first: the generic segment pattern would
	// otherwise swallow an embedded identifier.
	exprs := []string{
		`^/` + seg + `/` + seg + `/` + id + `/` + alt + `$`,
		`^/` + seg + `/` + id + `/` + alt + `$`,
		`^/` + seg + `/` + seg + `/` + seg + `/` + alt + `$`,
		`^/` + seg + `/` + seg + `/` + alt + `$`,
	}

	rules := make([]PatternRule, len(exprs))
	for i, expr := range exprs {
		rules[i] = actionRule(expr, actions)
	}
	return rules
}

// actionRule compiles a rule that keeps every captured segment in place and
// maps the final captured action keyword through the given table.
func actionRule(expr string, actions map[string]string) PatternRule {
	re := regexp.MustCompile(expr)
	return PatternRule{
		re: re,
		rewrite: func(m []string) string {
			segments := append([]string{}, m[1:len(m)-1]...)
			segments = append(segments, actions[m[len(m)-1]])
			return JoinPath(segments)
		},
	}
}
