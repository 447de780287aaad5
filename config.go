package waymark

import (
	"github.com/robfig/config"
)

// MergedConfig is a thin wrapper around robfig/config that resolves every
// option against the currently selected run-mode section first, falling back
// to the DEFAULT section.
type MergedConfig struct {
	config  *config.Config
	section string // The currently selected section, usually the run mode.
}

func LoadConfig(fname string) (*MergedConfig, error) {
	conf, err := config.ReadDefault(fname)
	if err != nil {
		return nil, err
	}
	return &MergedConfig{conf, ""}, nil
}

func NewEmptyConfig() *MergedConfig {
	return &MergedConfig{config.NewDefault(), ""}
}

func (c *MergedConfig) SetSection(section string) {
	c.section = section
}

func (c *MergedConfig) HasSection(section string) bool {
	return c.config.HasSection(section)
}

func (c *MergedConfig) Int(option string) (result int, found bool) {
	result, err := c.config.Int(c.section, option)
	return result, err == nil
}

func (c *MergedConfig) IntDefault(option string, dflt int) int {
	if r, found := c.Int(option); found {
		return r
	}
	return dflt
}

func (c *MergedConfig) Bool(option string) (result, found bool) {
	result, err := c.config.Bool(c.section, option)
	return result, err == nil
}

func (c *MergedConfig) BoolDefault(option string, dflt bool) bool {
	if r, found := c.Bool(option); found {
		return r
	}
	return dflt
}

func (c *MergedConfig) String(option string) (result string, found bool) {
	if r, err := c.config.String(c.section, option); err == nil {
		return stripQuotes(r), true
	}
	return "", false
}

func (c *MergedConfig) StringDefault(option, dflt string) string {
	if r, found := c.String(option); found {
		return r
	}
	return dflt
}

// Options returns all configuration option keys of the selected section (and
// the DEFAULT section) that match the given prefix.
func (c *MergedConfig) Options(prefix string) []string {
	var options []string
	keys, _ := c.config.Options(c.section)
	for _, key := range keys {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			options = append(options, key)
		}
	}
	return options
}

// Helpers

func stripQuotes(s string) string {
	if s == "" {
		return s
	}

	if s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}

	return s
}
