package waymark

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
)

const (
	routingRootConfigKey = "routing.root"
	appPrefixConfigKey   = "routing.app.prefix"
	guestPrefixConfigKey = "routing.guest.prefix"
	guestRoutesConfigKey = "routing.guest.routes"
)

// Tables is one immutable bundle of everything resolution needs. A bundle is
// built as a whole and never mutated; reloading replaces the whole bundle.
type Tables struct {
	Table    *Table
	Vocab    *Vocab
	Menu     *Menu
	Resolver *Resolver
	Composer *Composer
}

// LoadTables builds a table bundle from the configuration files below
// basePath, honoring the routing.* and vocab.* options of cfg.
func LoadTables(basePath string, cfg *MergedConfig) (*Tables, error) {
	table, err := LoadTable(filepath.Join(basePath, RoutesFile))
	if err != nil {
		return nil, err
	}

	locale := cfg.StringDefault(vocabLocaleConfigKey, defaultVocabLocale)
	vocab, err := LoadVocab(filepath.Join(basePath, VocabPath), locale)
	if err != nil {
		return nil, err
	}

	menu, err := LoadMenu(filepath.Join(basePath, MenuFile))
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(table, vocab)
	resolver.Root = cfg.StringDefault(routingRootConfigKey, DefaultRootPath)

	guestRoutes := DefaultGuestRoutes
	if routes := cfg.StringDefault(guestRoutesConfigKey, ""); routes != "" {
		guestRoutes = nil
		for _, route := range strings.Split(routes, ",") {
			if route = strings.TrimSpace(route); route != "" {
				guestRoutes = append(guestRoutes, route)
			}
		}
	}

	composer := NewComposer(
		cfg.StringDefault(appPrefixConfigKey, DefaultAppPrefix),
		cfg.StringDefault(guestPrefixConfigKey, DefaultGuestPrefix),
		guestRoutes,
	)

	return &Tables{
		Table:    table,
		Vocab:    vocab,
		Menu:     menu,
		Resolver: resolver,
		Composer: composer,
	}, nil
}

// Vet cross-checks the loaded tables for defects that are not fatal at load
// time: single-segment route declarations that contradict the segment
// dictionary would make the exact and the fallback layer disagree about the
// same keyword.
func (t *Tables) Vet() []string {
	var findings []string
	for _, d := range t.Table.Decls() {
		if !d.Static() {
			continue
		}
		canonical := SplitPath(d.Canonical)
		localized := SplitPath(d.Localized)
		if len(canonical) != 1 || len(localized) != 1 {
			continue
		}
		if got := t.Vocab.Token(canonical[0], ToLocalized); got != localized[0] {
			findings = append(findings, fmt.Sprintf(
				"route %s -> %s contradicts vocabulary entry %s=%s",
				d.Canonical, d.Localized, canonical[0], got))
		}
	}
	return findings
}

// Nav ties a table bundle to its configuration source. It implements
// watcher.Listener: a Refresh rebuilds the bundle from disk and publishes it
// with a single atomic swap, so in-flight resolutions keep reading the old
// bundle and later ones see the new one, never a mix.
type Nav struct {
	basePath string
	cfg      *MergedConfig
	tables   atomic.Pointer[Tables]
}

func NewNav(basePath string, cfg *MergedConfig) (*Nav, error) {
	n := &Nav{basePath: basePath, cfg: cfg}
	if err := n.Refresh(); err != nil {
		return nil, err
	}
	return n, nil
}

// Refresh rebuilds the whole table bundle. On failure the previous bundle
// stays in place.
func (n *Nav) Refresh() error {
	tables, err := LoadTables(n.basePath, n.cfg)
	if err != nil {
		return err
	}
	n.tables.Store(tables)
	return nil
}

// Tables returns the current bundle.
func (n *Nav) Tables() *Tables {
	return n.tables.Load()
}

// Resolve translates a path into the opposite vocabulary.
func (n *Nav) Resolve(p string, dir Direction) string {
	return n.Tables().Resolver.Resolve(p, dir)
}

// Compose wraps a resolved canonical path with its routing group prefix.
func (n *Nav) Compose(p string) string {
	return n.Tables().Composer.Compose(p)
}

// ScreenTitle returns the human-readable title for a canonical path.
func (n *Nav) ScreenTitle(p string) string {
	return n.Tables().Menu.ScreenTitle(p)
}
