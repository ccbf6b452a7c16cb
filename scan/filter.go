package scan

import (
	"strings"

	"github.com/km-arc/go-batis/metadata"
)

// TypeFilter decides whether a discovered type takes part in scanning.
// Filters see every named type under the roots; interface-ness and
// exportedness are checked by the scanner itself.
type TypeFilter interface {
	Match(m *metadata.TypeMeta) bool
}

// FilterFunc adapts a plain function to TypeFilter.
type FilterFunc func(m *metadata.TypeMeta) bool

func (f FilterFunc) Match(m *metadata.TypeMeta) bool { return f(m) }

// ByDirective matches types annotated with the named batis directive, the
// declarative opt-in marker.
func ByDirective(name string) TypeFilter {
	return FilterFunc(func(m *metadata.TypeMeta) bool {
		return m.HasDirective(name)
	})
}

// ByEmbeds matches interfaces that transitively embed the marker
// interface with the given fully-qualified name. The marker itself never
// matches: a type is not part of its own embedding closure.
func ByEmbeds(markerFQN string) TypeFilter {
	return FilterFunc(func(m *metadata.TypeMeta) bool {
		return m.EmbedsType(markerFQN)
	})
}

// BySuffix matches types whose simple name ends with the suffix.
func BySuffix(suffix string) TypeFilter {
	return FilterFunc(func(m *metadata.TypeMeta) bool {
		return strings.HasSuffix(m.Name, suffix)
	})
}

// AcceptAll matches everything. Installed as the include filter when no
// directive and no marker interface narrow the scan.
func AcceptAll() TypeFilter {
	return FilterFunc(func(*metadata.TypeMeta) bool { return true })
}
