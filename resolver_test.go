package waymark

import (
	"strings"
	"testing"
)

const testRoutes = `
/dashboard        /painel
/store/root       /inventory/root
/a/b              /x/y
/a                /q
/sign-in          /entrar
`

var testVocabPairs = map[string]string{
	"store": "estoque",
	"items": "itens",
	"b":     "bee",
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()

	table, err := ParseTable(strings.NewReader(testRoutes), "routes")
	if err != nil {
		t.Fatal(err)
	}
	vocab, err := NewVocab("pt", testVocabPairs)
	if err != nil {
		t.Fatal(err)
	}
	return NewResolver(table, vocab)
}

// Every declared mapping must translate exactly, in both directions.
func TestRoundTrip(t *testing.T) {
	r := newTestResolver(t)

	for _, d := range r.table.Decls() {
		if !d.Static() {
			continue
		}
		eq(t, d.Canonical, r.Resolve(d.Canonical, ToLocalized), d.Localized)
		eq(t, d.Localized, r.Resolve(d.Localized, ToCanonical), d.Canonical)
	}
}

// A trailing record identifier is split off before translation and
// re-appended verbatim afterwards, at every resolution layer.
func TestIdentifierPreservation(t *testing.T) {
	r := newTestResolver(t)

	for _, p := range []string{
		"/a/b",              // exact
		"/a/b/c/d",          // prefix match
		"/foo/bar/edit",     // pattern rewrite
		"/store/items",      // dictionary
		"/no/mapping/known", // dictionary passthrough
	} {
		eq(t, p, r.Resolve(p+"/"+testID, ToLocalized), r.Resolve(p, ToLocalized)+"/"+testID)
	}

	// A path consisting solely of an identifier passes through unchanged.
	eq(t, "id only", r.Resolve("/"+testID, ToLocalized), "/"+testID)
}

func TestPrefixMatch(t *testing.T) {
	r := newTestResolver(t)

	// The nearest declared ancestor translates; the remainder is appended
	// verbatim.
	eq(t, "nested", r.Resolve("/a/b/c/d", ToLocalized), "/x/y/c/d")
	eq(t, "reverse nested", r.Resolve("/x/y/c/d", ToCanonical), "/a/b/c/d")

	// Longest prefix first: "/a/b" must win over "/a" even though both are
	// declared.
	eq(t, "longest wins", r.Resolve("/a/b/z", ToLocalized), "/x/y/z")
	eq(t, "short ancestor", r.Resolve("/a/z", ToLocalized), "/q/z")
}

// Declared entry ("/store/root", "/inventory/root"); an undeclared nested
// path below it resolves through the prefix layer.
func TestStoreScenario(t *testing.T) {
	r := newTestResolver(t)

	eq(t, "scenario", r.Resolve("/store/root/items/create", ToLocalized), "/inventory/root/items/create")
}

func TestDictionaryFallback(t *testing.T) {
	r := newTestResolver(t)

	// No declared mapping anywhere: per-token translation, unknown tokens
	// pass through.
	eq(t, "tokens", r.Resolve("/store/items/history", ToLocalized), "/estoque/itens/history")
	eq(t, "reverse tokens", r.Resolve("/estoque/itens", ToCanonical), "/store/items")
	eq(t, "all unknown", r.Resolve("/foo/bar", ToLocalized), "/foo/bar")
}

func TestEmptyInputSubstitutesRoot(t *testing.T) {
	r := newTestResolver(t)

	eq(t, "default root", r.Resolve("", ToLocalized), DefaultRootPath)

	r.Root = "/painel"
	eq(t, "configured root", r.Resolve("", ToCanonical), "/painel")
}

func TestResolveNeverReturnsEmpty(t *testing.T) {
	r := newTestResolver(t)

	for _, p := range []string{
		"", "/", "//", "///", "no-slash", "/..", "/%2f", "/a//b",
		strings.Repeat("/x", 100),
	} {
		for _, dir := range []Direction{ToLocalized, ToCanonical} {
			if got := r.Resolve(p, dir); got == "" {
				t.Errorf("Resolve(%q, %s) returned an empty path", p, dir)
			}
		}
	}
}

// Helpers

func eq(t *testing.T, name string, actual, expected interface{}) bool {
	if actual != expected {
		t.Error(name, ": (actual)", actual, " != ", expected, "(expected)")
		return false
	}
	return true
}
