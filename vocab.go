package waymark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/robfig/config"
)

const (
	vocabFilePattern     = `^\w+\.[a-zA-Z]{2}$`
	defaultVocabLocale   = "pt"
	vocabLocaleConfigKey = "vocab.locale"
)

// Vocab validation errors.
var (
	ErrVocabDuplicate = errors.New("segment keyword declared twice")
	ErrVocabCollision = errors.New("two keywords translate to the same segment")
)

// Vocab is the per-segment dictionary used as the final resolution fallback.
// It translates individual path keywords between the vocabularies; unknown
// and identifier-shaped segments pass through unchanged, so translating a
// whole path through it always succeeds.
type Vocab struct {
	locale  string
	forward map[string]string // canonical keyword -> localized keyword
	reverse map[string]string // localized keyword -> canonical keyword
}

// NewVocab builds a dictionary from canonical -> localized keyword pairs.
// Collisions in the reverse direction are configuration defects and are
// rejected up front.
func NewVocab(locale string, pairs map[string]string) (*Vocab, error) {
	v := &Vocab{
		locale:  locale,
		forward: make(map[string]string, len(pairs)),
		reverse: make(map[string]string, len(pairs)),
	}
	for keyword, translation := range pairs {
		if first, exists := v.reverse[translation]; exists {
			// Report the colliding pair deterministically.
			a, b := first, keyword
			if b < a {
				a, b = b, a
			}
			return nil, fmt.Errorf("%w: %q and %q -> %q", ErrVocabCollision, a, b, translation)
		}
		v.forward[keyword] = translation
		v.reverse[translation] = keyword
	}
	return v, nil
}

// LoadVocab reads and merges all dictionary files for the given locale below
// dir. Files are named <domain>.<locale>, one "keyword=translation" pair per
// line, in the same format as the app configuration.
func LoadVocab(dir, locale string) (*Vocab, error) {
	pairs := map[string]string{}
	seen := map[string]string{} // keyword -> file it came from

	walk := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if matched, _ := regexp.MatchString(vocabFilePattern, info.Name()); !matched {
			TRACE.Printf("Ignoring vocabulary file %s because it did not have a valid extension", info.Name())
			return nil
		}
		if localeFromFileName(info.Name()) != strings.ToLower(locale) {
			return nil
		}

		cfg, err := config.ReadDefault(path)
		if err != nil {
			return fmt.Errorf("reading vocabulary file %s: %w", path, err)
		}

		options, err := cfg.Options(config.DEFAULT_SECTION)
		if err != nil {
			return fmt.Errorf("reading vocabulary file %s: %w", path, err)
		}
		for _, keyword := range options {
			translation, err := cfg.String(config.DEFAULT_SECTION, keyword)
			if err != nil {
				return fmt.Errorf("reading vocabulary file %s: %w", path, err)
			}
			if origin, exists := seen[keyword]; exists && pairs[keyword] != translation {
				return fmt.Errorf("%w: %q in %s and %s", ErrVocabDuplicate, keyword, origin, path)
			}
			seen[keyword] = path
			pairs[keyword] = translation
		}

		TRACE.Println("Successfully loaded vocabulary from file", info.Name())
		return nil
	}

	if err := filepath.Walk(dir, walk); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return NewVocab(locale, pairs)
}

func localeFromFileName(file string) string {
	extension := filepath.Ext(file)[1:]
	return strings.ToLower(extension)
}

// Locale returns the locale the dictionary was loaded for.
func (v *Vocab) Locale() string {
	return v.locale
}

// Len returns the number of keyword pairs.
func (v *Vocab) Len() int {
	return len(v.forward)
}

// Token translates a single path segment. Identifier-shaped and unknown
// segments are returned unchanged.
func (v *Vocab) Token(segment string, dir Direction) string {
	if IsIdentifier(segment) {
		return segment
	}

	table := v.forward
	if dir == ToCanonical {
		table = v.reverse
	}
	if translation, ok := table[segment]; ok {
		return translation
	}
	return segment
}

// Translate translates a path segment by segment. It is total: in the worst
// case every segment passes through untranslated.
func (v *Vocab) Translate(p string, dir Direction) string {
	segments := SplitPath(p)
	for i, segment := range segments {
		segments[i] = v.Token(segment, dir)
	}
	return JoinPath(segments)
}
