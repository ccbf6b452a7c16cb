// Package metadata supplies static type facts about Go packages without
// executing them: which named types a package declares, which of those are
// interfaces, what they embed, and which batis directives annotate them.
// The scan package consumes these facts; it never sees source code.
package metadata

import (
	"sort"
	"strings"
)

// DirectivePrefix introduces machine-readable comments on type
// declarations, in the //go:generate style:
//
//	//batis:mapper
//	//batis:scope request proxy
//	type UserMapper interface { ... }
const DirectivePrefix = "batis:"

// Directive is one parsed batis comment: a name and optional arguments.
type Directive struct {
	Name string
	Args []string
}

// ParseDirectives extracts directives from a doc comment. It accepts both
// raw comment lines ("//batis:mapper") and the marker-stripped form that
// ast.CommentGroup.Text produces ("batis:mapper").
func ParseDirectives(doc string) []Directive {
	var out []Directive
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "//")
		if !strings.HasPrefix(line, DirectivePrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, DirectivePrefix))
		if len(fields) == 0 {
			continue
		}
		out = append(out, Directive{Name: fields[0], Args: fields[1:]})
	}
	return out
}

// TypeMeta describes one named type declaration.
type TypeMeta struct {
	// Name is the simple type name, e.g. "UserMapper".
	Name string
	// PkgPath is the import path of the declaring package.
	PkgPath string
	// IsInterface reports whether the declaration is an interface type.
	IsInterface bool
	// Exported reports whether the name is exported.
	Exported bool
	// Directives are the batis comments on the declaration.
	Directives []Directive
	// Embedded holds the fully-qualified names of all interfaces the type
	// embeds, transitively, the type itself excluded.
	Embedded []string
}

// FQN returns the fully-qualified type name, "pkg/path.Name".
func (m *TypeMeta) FQN() string {
	if m.PkgPath == "" {
		return m.Name
	}
	return m.PkgPath + "." + m.Name
}

// HasDirective reports whether a directive with the given name is present.
func (m *TypeMeta) HasDirective(name string) bool {
	_, ok := m.Directive(name)
	return ok
}

// Directive returns the first directive with the given name.
func (m *TypeMeta) Directive(name string) (Directive, bool) {
	for _, d := range m.Directives {
		if d.Name == name {
			return d, true
		}
	}
	return Directive{}, false
}

// EmbedsType reports whether the type transitively embeds the interface
// with the given fully-qualified name. A type never embeds itself.
func (m *TypeMeta) EmbedsType(fqn string) bool {
	for _, e := range m.Embedded {
		if e == fqn {
			return true
		}
	}
	return false
}

// Source enumerates the type declarations under one or more package roots.
// A root is a Go package pattern; the "/..." suffix includes subpackages.
type Source interface {
	Types(roots ...string) ([]*TypeMeta, error)
}

// StaticSource is a Source over a fixed set of type facts, matched against
// roots by package path. It backs tests and programmatic setups that have
// no Go source on disk.
type StaticSource []*TypeMeta

// Types returns the entries whose package path matches any root, in stable
// order.
func (s StaticSource) Types(roots ...string) ([]*TypeMeta, error) {
	var out []*TypeMeta
	for _, m := range s {
		for _, root := range roots {
			if matchesRoot(m.PkgPath, root) {
				out = append(out, m)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PkgPath != out[j].PkgPath {
			return out[i].PkgPath < out[j].PkgPath
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func matchesRoot(pkgPath, root string) bool {
	if prefix, ok := strings.CutSuffix(root, "/..."); ok {
		return pkgPath == prefix || strings.HasPrefix(pkgPath, prefix+"/")
	}
	return pkgPath == root
}
