// Package config provides the property environment behind the container's
// placeholder resolution: layered property sources (process env, dotenv
// files, in-memory maps), the ${name} / ${name:default} placeholder
// grammar, and definition post-processors that rewrite registered
// definitions from those sources.
package config

import "strings"

const (
	placeholderPrefix  = "${"
	placeholderSuffix  = "}"
	defaultValueSep    = ":"
	maxResolutionDepth = 16
)

// Environment layers property sources; earlier sources win. It satisfies
// the container's Environment interface.
type Environment struct {
	sources []PropertySource
}

// NewEnvironment builds an environment over the given sources, first
// source queried first.
func NewEnvironment(sources ...PropertySource) *Environment {
	return &Environment{sources: sources}
}

// Standard returns the usual layering: process environment first, then the
// given dotenv files (".env" when none are named). Process variables
// override file values, mirroring how dotenv loading behaves elsewhere.
func Standard(files ...string) *Environment {
	return NewEnvironment(EnvSource{}, NewDotenvSource(files...))
}

// AddSource appends a source with lower precedence than all existing ones.
func (e *Environment) AddSource(s PropertySource) {
	e.sources = append(e.sources, s)
}

// Lookup returns the first value found for key across the sources.
func (e *Environment) Lookup(key string) (string, bool) {
	for _, s := range e.sources {
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Get returns the value for key, falling back when no source has it.
func (e *Environment) Get(key, fallback string) string {
	if v, ok := e.Lookup(key); ok {
		return v
	}
	return fallback
}

// ResolvePlaceholders replaces every ${name} and ${name:default} in s.
// Placeholders may nest; a placeholder with no value and no default is
// left in place verbatim.
func (e *Environment) ResolvePlaceholders(s string) string {
	return e.resolve(s, 0)
}

func (e *Environment) resolve(s string, depth int) string {
	if depth >= maxResolutionDepth || !strings.Contains(s, placeholderPrefix) {
		return s
	}
	var b strings.Builder
	for {
		start := strings.Index(s, placeholderPrefix)
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := matchingBrace(s, start+len(placeholderPrefix))
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])

		inner := e.resolve(s[start+len(placeholderPrefix):end], depth+1)
		key, fallback, hasFallback := strings.Cut(inner, defaultValueSep)
		if v, ok := e.Lookup(key); ok {
			b.WriteString(e.resolve(v, depth+1))
		} else if hasFallback {
			b.WriteString(fallback)
		} else {
			b.WriteString(placeholderPrefix)
			b.WriteString(inner)
			b.WriteString(placeholderSuffix)
		}
		s = s[end+len(placeholderSuffix):]
	}
}

// matchingBrace returns the index of the brace closing the placeholder
// whose content starts at from, or -1.
func matchingBrace(s string, from int) int {
	depth := 0
	for i := from; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], placeholderPrefix):
			depth++
			i++
		case s[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
