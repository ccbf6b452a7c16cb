package metadata

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// loadMode asks the build system for everything type-fact extraction
// needs: names, files, parsed syntax for doc comments, and checked types
// for interface and embedding analysis.
const loadMode = packages.NeedName | packages.NeedFiles |
	packages.NeedSyntax | packages.NeedTypes |
	packages.NeedTypesInfo | packages.NeedImports

// Loader is the go/packages-backed Source. The zero value loads from the
// current directory.
type Loader struct {
	// Dir is the directory the build system is invoked from. Empty means
	// the process working directory.
	Dir string
	// IncludeTests also loads _test.go files of the scanned packages.
	IncludeTests bool
}

// Types loads the packages matching the given patterns and returns a
// TypeMeta for every named type declaration found in them. Patterns that
// match no packages yield an empty result; packages that fail to load or
// type-check yield an error.
func (l *Loader) Types(roots ...string) ([]*TypeMeta, error) {
	if len(roots) == 0 {
		return nil, nil
	}
	cfg := &packages.Config{
		Mode:  loadMode,
		Dir:   l.Dir,
		Tests: l.IncludeTests,
	}
	pkgs, err := packages.Load(cfg, roots...)
	if err != nil {
		return nil, fmt.Errorf("load packages %v: %w", roots, err)
	}

	var loadErrs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, e.Error())
		}
	}
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("package errors:\n  %s", strings.Join(loadErrs, "\n  "))
	}

	var out []*TypeMeta
	seen := make(map[string]bool)
	for _, pkg := range pkgs {
		if pkg.Types == nil || seen[pkg.PkgPath] {
			continue
		}
		seen[pkg.PkgPath] = true
		out = append(out, extractTypes(pkg)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PkgPath != out[j].PkgPath {
			return out[i].PkgPath < out[j].PkgPath
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// extractTypes walks a package's syntax so doc comments stay paired with
// the declarations they annotate, then consults checked types for the
// interface facts.
func extractTypes(pkg *packages.Package) []*TypeMeta {
	var out []*TypeMeta
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				obj := pkg.TypesInfo.Defs[ts.Name]
				if obj == nil {
					continue
				}

				doc := ts.Doc
				if doc == nil {
					doc = gd.Doc
				}
				var directives []Directive
				if doc != nil {
					// CommentGroup.Text strips //tool:directive lines, so
					// feed the raw comments instead.
					lines := make([]string, 0, len(doc.List))
					for _, cm := range doc.List {
						lines = append(lines, cm.Text)
					}
					directives = ParseDirectives(strings.Join(lines, "\n"))
				}

				iface, isIface := obj.Type().Underlying().(*types.Interface)
				meta := &TypeMeta{
					Name:        ts.Name.Name,
					PkgPath:     pkg.PkgPath,
					IsInterface: isIface,
					Exported:    ts.Name.IsExported(),
					Directives:  directives,
				}
				if isIface {
					meta.Embedded = embeddedClosure(iface)
				}
				out = append(out, meta)
			}
		}
	}
	return out
}

// embeddedClosure collects the fully-qualified names of every interface
// reachable through declared embedding, the starting interface excluded.
func embeddedClosure(iface *types.Interface) []string {
	seen := make(map[string]bool)
	var walk func(*types.Interface)
	walk = func(i *types.Interface) {
		for n := 0; n < i.NumEmbeddeds(); n++ {
			et := unalias(i.EmbeddedType(n))
			named, ok := et.(*types.Named)
			if !ok {
				continue
			}
			fqn := namedFQN(named)
			if fqn == "" || seen[fqn] {
				continue
			}
			seen[fqn] = true
			if sub, ok := named.Underlying().(*types.Interface); ok {
				walk(sub)
			}
		}
	}
	walk(iface)

	out := make([]string, 0, len(seen))
	for fqn := range seen {
		out = append(out, fqn)
	}
	sort.Strings(out)
	return out
}

func namedFQN(named *types.Named) string {
	obj := named.Obj()
	if obj == nil {
		return ""
	}
	if obj.Pkg() == nil {
		// Universe types such as error.
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}
