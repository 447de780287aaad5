package waymark

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table validation errors. They are wrapped with the offending file name,
// line number, and path, so use errors.Is to test for them.
var (
	ErrMalformedDecl      = errors.New("malformed route declaration")
	ErrDuplicateCanonical = errors.New("duplicate canonical path")
	ErrDuplicateLocalized = errors.New("duplicate localized path")
	ErrParamMismatch      = errors.New("parameter names differ between vocabularies")
	ErrRoundTrip          = errors.New("mapping does not round-trip")
)

// Decl is one declared route mapping between the two vocabularies.
//
// A declaration whose path segments contain ":name" placeholders is
// parameterized; it matches structurally and rebuilds the opposite side with
// the captured arguments. All other declarations are static and are resolved
// through plain map lookups.
type Decl struct {
	Canonical string
	Localized string
	Params    []string // placeholder names in canonical order; empty for static declarations

	line int
}

// Static reports whether the declaration maps two literal paths.
func (d *Decl) Static() bool {
	return len(d.Params) == 0
}

func (d *Decl) source(dir Direction) string {
	if dir == ToCanonical {
		return d.Localized
	}
	return d.Canonical
}

func (d *Decl) target(dir Direction) string {
	if dir == ToCanonical {
		return d.Canonical
	}
	return d.Localized
}

// Match checks the given path against the declaration's source template for
// the given direction and captures the placeholder arguments.
func (d *Decl) Match(p string, dir Direction) (args map[string]string, ok bool) {
	template := SplitPath(d.source(dir))
	segments := SplitPath(p)
	if len(template) != len(segments) {
		return nil, false
	}

	args = make(map[string]string, len(d.Params))
	for i, el := range template {
		if strings.HasPrefix(el, ":") {
			args[el[1:]] = segments[i]
			continue
		}
		if el != segments[i] {
			return nil, false
		}
	}
	return args, true
}

// Build fills the declaration's target template for the given direction with
// the given arguments.
func (d *Decl) Build(args map[string]string, dir Direction) string {
	template := SplitPath(d.target(dir))
	built := make([]string, len(template))
	for i, el := range template {
		if strings.HasPrefix(el, ":") {
			built[i] = args[el[1:]]
		} else {
			built[i] = el
		}
	}
	return JoinPath(built)
}

// Table is the bidirectional mapping between the canonical and the localized
// route vocabulary. It is built once from a routes file and immutable
// afterwards; every lookup is a read-only operation.
type Table struct {
	decls []*Decl

	forward map[string]*Decl // canonical path -> declaration, static only
	reverse map[string]*Decl // localized path -> declaration, static only
	params  []*Decl          // parameterized declarations, in declaration order
}

// LoadTable reads and validates a routes file.
func LoadTable(fname string) (*Table, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTable(f, fname)
}

// ParseTable reads a route table from r. Every line declares one mapping as
// "canonical-path localized-path"; blank lines and #-comments are skipped.
func ParseTable(r io.Reader, name string) (*Table, error) {
	var decls []*Decl

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		decl, err := parseDeclLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, n, err)
		}
		decl.line = n
		decls = append(decls, decl)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	table, err := NewTable(decls)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return table, nil
}

func parseDeclLine(line string) (*Decl, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: expected two paths, got %q", ErrMalformedDecl, line)
	}

	canonical, localized := fields[0], fields[1]
	if !strings.HasPrefix(canonical, "/") || !strings.HasPrefix(localized, "/") {
		return nil, fmt.Errorf("%w: paths must begin with /: %q", ErrMalformedDecl, line)
	}

	canonicalParams := templateParams(canonical)
	localizedParams := templateParams(localized)
	if !sameParams(canonicalParams, localizedParams) {
		return nil, fmt.Errorf("%w: %v vs. %v", ErrParamMismatch, canonicalParams, localizedParams)
	}

	return &Decl{
		Canonical: canonical,
		Localized: localized,
		Params:    canonicalParams,
	}, nil
}

func templateParams(p string) []string {
	var params []string
	for _, el := range SplitPath(p) {
		if strings.HasPrefix(el, ":") {
			params = append(params, el[1:])
		}
	}
	return params
}

func sameParams(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, name := range a {
		seen[name] = true
	}
	for _, name := range b {
		if !seen[name] {
			return false
		}
	}
	return true
}

// NewTable indexes and validates the given declarations. Bijectivity is
// asserted here: duplicate canonical keys, duplicate localized values, and
// declarations that do not survive a forward -> reverse -> forward round-trip
// are rejected instead of silently resolving to an arbitrary winner.
func NewTable(decls []*Decl) (*Table, error) {
	t := &Table{
		decls:   decls,
		forward: make(map[string]*Decl, len(decls)),
		reverse: make(map[string]*Decl, len(decls)),
	}

	for _, d := range decls {
		if !d.Static() {
			t.params = append(t.params, d)
			continue
		}
		if dup, exists := t.forward[d.Canonical]; exists {
			return nil, fmt.Errorf("line %d: %w: %s (first declared on line %d)",
				d.line, ErrDuplicateCanonical, d.Canonical, dup.line)
		}
		if dup, exists := t.reverse[d.Localized]; exists {
			return nil, fmt.Errorf("line %d: %w: %s (first declared on line %d)",
				d.line, ErrDuplicateLocalized, d.Localized, dup.line)
		}
		t.forward[d.Canonical] = d
		t.reverse[d.Localized] = d
	}

	for _, d := range t.decls {
		if !d.Static() {
			continue
		}
		if t.reverse[t.forward[d.Canonical].Localized] != d {
			return nil, fmt.Errorf("line %d: %w: %s", d.line, ErrRoundTrip, d.Canonical)
		}
	}

	return t, nil
}

// Decls returns the declarations in declaration order.
func (t *Table) Decls() []*Decl {
	return t.decls
}

// Lookup translates a declared path into the opposite vocabulary. It returns
// false on a miss, which signals the caller to continue with the next
// resolution layer.
func (t *Table) Lookup(p string, dir Direction) (string, bool) {
	var index map[string]*Decl
	if dir == ToCanonical {
		index = t.reverse
	} else {
		index = t.forward
	}

	if d, ok := index[p]; ok {
		return d.target(dir), true
	}

	for _, d := range t.params {
		if args, ok := d.Match(p, dir); ok {
			return d.Build(args, dir), true
		}
	}

	return "", false
}
