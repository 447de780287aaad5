package waymark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposerGroups(t *testing.T) {
	c := NewComposer(DefaultAppPrefix, DefaultGuestPrefix, DefaultGuestRoutes)

	assert.Equal(t, GroupAuthenticated, c.Group("/dashboard"))
	assert.Equal(t, GroupAuthenticated, c.Group("/store/items"))
	assert.Equal(t, GroupGuest, c.Group("/sign-in"))
	assert.Equal(t, GroupGuest, c.Group("/sign-up"))
	assert.Equal(t, GroupGuest, c.Group("/forgot-password"))

	// The parameterized member matches on its de-parameterized base.
	assert.Equal(t, GroupGuest, c.Group("/reset-password/3f8a9c"))
	assert.Equal(t, GroupAuthenticated, c.Group("/reset-password"),
		"template base without a runtime token is not a guest path")
	assert.Equal(t, GroupAuthenticated, c.Group("/reset-password/3f8a9c/extra"))
}

func TestCompose(t *testing.T) {
	c := NewComposer(DefaultAppPrefix, DefaultGuestPrefix, DefaultGuestRoutes)

	assert.Equal(t, "/app/dashboard", c.Compose("/dashboard"))
	assert.Equal(t, "/app/store/items", c.Compose("/store/items"))
	assert.Equal(t, "/auth/sign-in", c.Compose("/sign-in"))
	assert.Equal(t, "/auth/reset-password/3f8a9c", c.Compose("/reset-password/3f8a9c"))

	// Defective input still composes to something usable.
	assert.Equal(t, "/app/", c.Compose(""))
	assert.Equal(t, "/app/dashboard", c.Compose("dashboard"))
}

func TestComposeIdempotence(t *testing.T) {
	c := NewComposer(DefaultAppPrefix, DefaultGuestPrefix, DefaultGuestRoutes)

	for _, p := range []string{"/dashboard", "/sign-in", "/reset-password/3f8a9c", "/store/items/" + testID} {
		composed := c.Compose(p)
		assert.Equal(t, composed, c.Compose(composed), "composing twice must not double-prefix")
	}
}

func TestComposerCustomConfiguration(t *testing.T) {
	c := NewComposer("/m", "/public/", []string{"/login", "/recover/:code"})

	assert.Equal(t, "/public/login", c.Compose("/login"))
	assert.Equal(t, "/public/recover/xyz", c.Compose("/recover/xyz"))
	assert.Equal(t, "/m/dashboard", c.Compose("/dashboard"))
	assert.Equal(t, GroupAuthenticated, c.Group("/sign-in"),
		"default guest routes do not apply once overridden")
}
