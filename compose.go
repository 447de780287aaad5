package waymark

import (
	"strings"
)

// RoutingGroup classifies a resolved path into the structural area it is
// mounted under by the navigation runtime.
type RoutingGroup int

const (
	// GroupAuthenticated covers the regular application screens.
	GroupAuthenticated RoutingGroup = iota
	// GroupGuest covers the small, fixed unauthenticated flow
	// (sign-in, registration, password recovery).
	GroupGuest
)

func (g RoutingGroup) String() string {
	if g == GroupGuest {
		return "guest"
	}
	return "authenticated"
}

// Default structural prefixes and guest flow, used when app.conf does not
// override them.
const (
	DefaultAppPrefix   = "/app"
	DefaultGuestPrefix = "/auth"
)

// DefaultGuestRoutes enumerates the canonical unauthenticated routes. The
// ":token" member is a template whose final segment is a runtime value
// (a password-reset token), not a declared path segment.
var DefaultGuestRoutes = []string{
	"/sign-in",
	"/sign-up",
	"/forgot-password",
	"/reset-password/:token",
}

// Composer wraps resolved canonical paths with the structural prefix of
// their routing group before handoff to the navigation runtime.
type Composer struct {
	appPrefix   string
	guestPrefix string

	guest      map[string]bool // literal guest paths
	guestBases map[string]bool // guest templates with the trailing runtime token stripped
}

// NewComposer builds a composer for the given prefixes and guest route set.
// A guest route ending in a ":name" segment is treated as parameterized: its
// de-parameterized base is matched and the runtime token re-appended after
// composing.
func NewComposer(appPrefix, guestPrefix string, guestRoutes []string) *Composer {
	c := &Composer{
		appPrefix:   strings.TrimSuffix(appPrefix, "/"),
		guestPrefix: strings.TrimSuffix(guestPrefix, "/"),
		guest:       make(map[string]bool, len(guestRoutes)),
		guestBases:  make(map[string]bool),
	}

	for _, route := range guestRoutes {
		segments := SplitPath(route)
		if len(segments) == 0 {
			continue
		}
		if strings.HasPrefix(segments[len(segments)-1], ":") {
			c.guestBases[JoinPath(segments[:len(segments)-1])] = true
			continue
		}
		c.guest[JoinPath(segments)] = true
	}

	return c
}

// Group classifies a canonical path.
func (c *Composer) Group(p string) RoutingGroup {
	base, token := c.splitGuestToken(p)
	if token != "" && c.guestBases[base] {
		return GroupGuest
	}
	if c.guest[JoinPath(SplitPath(p))] {
		return GroupGuest
	}
	return GroupAuthenticated
}

// Compose prefixes a resolved path with its routing group's structural
// prefix. Composing an already-prefixed path is a no-op.
func (c *Composer) Compose(p string) string {
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	if c.prefixed(p, c.appPrefix) || c.prefixed(p, c.guestPrefix) {
		return p
	}

	if c.Group(p) == GroupGuest {
		if base, token := c.splitGuestToken(p); token != "" && c.guestBases[base] {
			return c.guestPrefix + base + "/" + token
		}
		return c.guestPrefix + p
	}
	return c.appPrefix + p
}

func (c *Composer) prefixed(p, prefix string) bool {
	if prefix == "" {
		return false
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// splitGuestToken splits the trailing runtime token off a parameterized
// guest path candidate.
func (c *Composer) splitGuestToken(p string) (base, token string) {
	segments := SplitPath(p)
	if len(segments) < 2 {
		return "", ""
	}
	return JoinPath(segments[:len(segments)-1]), segments[len(segments)-1]
}
