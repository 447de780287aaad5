package waymark

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/robfig/pathtree"
	"gopkg.in/yaml.v3"
)

// MenuNode is one entry of the navigation/menu description tree. Nodes
// without a path are pure grouping headers. A node path may contain an ":id"
// style placeholder, which only matches identifier-shaped segments.
type MenuNode struct {
	Path     string      `yaml:"path,omitempty"`
	Title    string      `yaml:"title"`
	Children []*MenuNode `yaml:"children,omitempty"`
}

// Menu resolves canonical paths to human-readable screen titles.
type Menu struct {
	exact map[string]string
	tree  *pathtree.Node
}

// LoadMenu reads the menu tree from a YAML file. A missing file yields an
// empty menu: titles then always come from the keyword fallback.
func LoadMenu(fname string) (*Menu, error) {
	data, err := os.ReadFile(fname)
	if os.IsNotExist(err) {
		TRACE.Println("No menu file at", fname)
		return NewMenu(nil)
	}
	if err != nil {
		return nil, err
	}

	var doc struct {
		Menu []*MenuNode `yaml:"menu"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fname, err)
	}

	menu, err := NewMenu(doc.Menu)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return menu, nil
}

// NewMenu indexes the given node tree.
func NewMenu(nodes []*MenuNode) (*Menu, error) {
	m := &Menu{
		exact: make(map[string]string),
		tree:  pathtree.New(),
	}
	if err := m.add(nodes); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Menu) add(nodes []*MenuNode) error {
	for _, node := range nodes {
		if node.Path != "" {
			if strings.Contains(node.Path, ":") {
				if err := m.tree.Add(node.Path, node.Title); err != nil {
					return fmt.Errorf("menu node %s: %w", node.Path, err)
				}
			} else {
				if _, exists := m.exact[node.Path]; exists {
					return fmt.Errorf("menu node %s declared twice", node.Path)
				}
				m.exact[node.Path] = node.Title
			}
		}
		if err := m.add(node.Children); err != nil {
			return err
		}
	}
	return nil
}

// Title looks up the declared title for a path: exact match first, then
// placeholder nodes. A placeholder only matches if the path segment in its
// position is identifier-shaped. ok is false when no node matches.
func (m *Menu) Title(p string) (title string, ok bool) {
	p = JoinPath(SplitPath(p))

	if title, ok := m.exact[p]; ok {
		return title, true
	}

	leaf, expansions := m.tree.Find(p)
	if leaf == nil {
		return "", false
	}
	for _, segment := range expansions {
		if !IsIdentifier(segment) {
			return "", false
		}
	}

	title, ok = leaf.Value.(string)
	return title, ok
}

// ScreenTitle returns the title for a path, falling back to a keyword-case
// to title-case conversion of the final non-identifier segment when no menu
// node matches.
func (m *Menu) ScreenTitle(p string) string {
	if title, ok := m.Title(p); ok {
		return title
	}

	segments := SplitPath(p)
	for n := len(segments) - 1; n >= 0; n-- {
		if !IsIdentifier(segments[n]) {
			return titleCase(segments[n])
		}
	}
	return ""
}

// titleCase converts a keyword-case path segment ("work-orders") into a
// human-readable title ("Work Orders").
func titleCase(segment string) string {
	words := strings.FieldsFunc(segment, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
