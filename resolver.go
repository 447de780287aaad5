package waymark

import (
	"runtime/debug"
)

// DefaultRootPath is substituted for empty or otherwise unusable input paths.
const DefaultRootPath = "/dashboard"

// Resolver translates paths between the canonical and the localized
// vocabulary. Resolution is a pure function over the frozen tables; it never
// fails: every path that has no declared mapping degrades through prefix
// matching, pattern rewriting, and finally per-segment dictionary
// translation.
type Resolver struct {
	table *Table
	vocab *Vocab
	rules map[Direction][]PatternRule

	// Root is returned for defective (empty) input. Callers sit directly in
	// UI navigation handlers, so substituting a safe path beats propagating
	// an error.
	Root string
}

func NewResolver(table *Table, vocab *Vocab) *Resolver {
	return &Resolver{
		table: table,
		vocab: vocab,
		rules: map[Direction][]PatternRule{
			ToLocalized: ActionRules(ToLocalized),
			ToCanonical: ActionRules(ToCanonical),
		},
		Root: DefaultRootPath,
	}
}

// Resolve translates the given path into the opposite vocabulary. It always
// returns a usable, non-empty path and never panics out of the pipeline.
func (r *Resolver) Resolve(p string, dir Direction) (result string) {
	defer func() {
		if err := recover(); err != nil {
			ERROR.Printf("Recovered from panic while resolving %q: %v\n%s", p, err, debug.Stack())
			result = r.Root
		}
	}()

	if p == "" {
		WARN.Printf("Asked to resolve an empty path, substituting %s", r.Root)
		return r.Root
	}

	pathWithoutID, id := SplitIdentifier(p)
	translated, layer := r.resolveBase(pathWithoutID, dir)
	TRACE.Printf("Resolved %q to %q (%s) via %s", p, translated, dir, layer)

	if id == "" {
		return translated
	}
	if translated == "" {
		return "/" + id
	}
	return translated + "/" + id
}

// resolveBase runs the identifier-free part of a path through the resolution
// layers and names the layer that produced the result.
func (r *Resolver) resolveBase(p string, dir Direction) (string, string) {
	if p == "" {
		return "", "identifier-only"
	}

	// Lookups are exact string matches, so stray slashes would otherwise
	// bypass the declared mapping of the same path.
	p = JoinPath(SplitPath(p))

	if translated, ok := r.table.Lookup(p, dir); ok {
		return translated, "exact"
	}

	if translated, ok := r.prefixMatch(p, dir); ok {
		return translated, "prefix"
	}

	for _, rule := range r.rules[dir] {
		if translated, ok := rule.Apply(p); ok {
			return translated, "pattern"
		}
	}

	WARN.Printf("No declared mapping for %q (%s), falling back to segment dictionary", p, dir)
	return r.vocab.Translate(p, dir), "dictionary"
}

// prefixMatch searches for the nearest declared ancestor mapping, longest
// prefix first, and re-appends the untranslated remainder verbatim. Trying
// the most specific ancestor first is a design invariant: it keeps an overly
// generic ancestor from shadowing a more precise one.
func (r *Resolver) prefixMatch(p string, dir Direction) (string, bool) {
	segments := SplitPath(p)
	for n := len(segments) - 1; n >= 1; n-- {
		prefix := JoinPath(segments[:n])
		if translated, ok := r.table.Lookup(prefix, dir); ok {
			return translated + JoinPath(segments[n:]), true
		}
	}
	return "", false
}
