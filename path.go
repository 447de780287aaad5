package waymark

import (
	"strings"

	"github.com/google/uuid"
)

// Direction selects which vocabulary a path is translated into.
type Direction int

const (
	// ToLocalized translates canonical (internal) paths into the user-facing
	// vocabulary.
	ToLocalized Direction = iota
	// ToCanonical translates user-facing paths back into the internal
	// vocabulary.
	ToCanonical
)

func (d Direction) String() string {
	if d == ToCanonical {
		return "canonical"
	}
	return "localized"
}

// ParseDirection maps the CLI / query-string spelling of a direction to its
// Direction value. Unknown spellings default to ToLocalized.
func ParseDirection(s string) Direction {
	switch strings.ToLower(s) {
	case "canonical", "c":
		return ToCanonical
	default:
		return ToLocalized
	}
}

// identifierLength is the canonical textual form of a record identifier:
// a 36-character hyphenated UUID. Other UUID spellings (URN, braced, bare
// hex) are not record identifiers as far as paths are concerned.
const identifierLength = 36

// IsIdentifier reports whether the given path segment is an opaque record
// identifier. Identifiers are never translated.
func IsIdentifier(segment string) bool {
	if len(segment) != identifierLength {
		return false
	}
	_, err := uuid.Parse(segment)
	return err == nil
}

// SplitPath breaks a path into its non-empty-delimited segments.
// Leading and trailing slashes are inconsequential.
func SplitPath(p string) []string {
	elements := strings.Split(p, "/")
	if len(elements) > 0 && elements[0] == "" {
		elements = elements[1:]
	}
	if len(elements) > 0 && elements[len(elements)-1] == "" {
		elements = elements[:len(elements)-1]
	}
	return elements
}

// JoinPath is the inverse of SplitPath. An empty segment list yields "/".
func JoinPath(segments []string) string {
	return "/" + strings.Join(segments, "/")
}

// SplitIdentifier splits a trailing record identifier off the given path.
// It returns the path without the identifier, plus the identifier itself, or
// an empty string if the path does not end in one. A path consisting solely
// of an identifier yields an empty remainder. SplitIdentifier always
// succeeds.
func SplitIdentifier(p string) (pathWithoutID, id string) {
	segments := SplitPath(p)
	if len(segments) == 0 || !IsIdentifier(segments[len(segments)-1]) {
		return p, ""
	}

	id = segments[len(segments)-1]
	segments = segments[:len(segments)-1]
	if len(segments) == 0 {
		return "", id
	}
	return JoinPath(segments), id
}
