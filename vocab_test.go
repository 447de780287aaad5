package waymark

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestVocabTranslate(t *testing.T) {
	v, err := NewVocab("pt", map[string]string{
		"store": "estoque",
		"items": "itens",
		"edit":  "editar",
	})
	if err != nil {
		t.Fatal(err)
	}

	eq(t, "forward", v.Translate("/store/items", ToLocalized), "/estoque/itens")
	eq(t, "reverse", v.Translate("/estoque/itens", ToCanonical), "/store/items")
	eq(t, "unknown tokens", v.Translate("/store/unknown", ToLocalized), "/estoque/unknown")
	eq(t, "identifier", v.Translate("/store/"+testID, ToLocalized), "/estoque/"+testID)
	eq(t, "mixed", v.Translate("/store/"+testID+"/edit", ToLocalized), "/estoque/"+testID+"/editar")
	eq(t, "empty", v.Translate("", ToLocalized), "/")
	eq(t, "root", v.Translate("/", ToCanonical), "/")
}

func TestVocabCollision(t *testing.T) {
	_, err := NewVocab("pt", map[string]string{
		"jobs":     "servicos",
		"services": "servicos",
	})
	if !errors.Is(err, ErrVocabCollision) {
		t.Error("Expected collision error, got:", err)
	}
}

func TestLoadVocab(t *testing.T) {
	v, err := LoadVocab(filepath.Join("testdata", "vocab"), "pt")
	if err != nil {
		t.Fatal(err)
	}

	if v.Len() == 0 {
		t.Fatal("No vocabulary entries loaded")
	}
	eq(t, "locale", v.Locale(), "pt")
	eq(t, "token", v.Token("store", ToLocalized), "estoque")
	eq(t, "reverse token", v.Token("estoque", ToCanonical), "store")
}

func TestLoadVocabIgnoresOtherLocales(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"segments.pt": "store = estoque\n",
		"segments.es": "store = almacen\n",
		"README":      "not a vocabulary file\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	v, err := LoadVocab(dir, "pt")
	if err != nil {
		t.Fatal(err)
	}
	eq(t, "entries", v.Len(), 1)
	eq(t, "token", v.Token("store", ToLocalized), "estoque")
}

func TestLoadVocabDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"store.pt": "items = itens\n",
		"other.pt": "items = artigos\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := LoadVocab(dir, "pt"); !errors.Is(err, ErrVocabDuplicate) {
		t.Error("Expected duplicate error, got:", err)
	}
}

func TestLoadVocabMissingDirectory(t *testing.T) {
	v, err := LoadVocab(filepath.Join(t.TempDir(), "nope"), "pt")
	if err != nil {
		t.Fatal(err)
	}
	eq(t, "entries", v.Len(), 0)
	// Still total: everything passes through.
	eq(t, "passthrough", v.Translate("/store/items", ToLocalized), "/store/items")
}
