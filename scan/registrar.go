package scan

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/km-arc/go-batis/container"
)

// Scan declares one scanning pass for the Registrar: where to look and
// how to bind what is found. Roots come from Value, BasePackages and the
// packages of the BasePackageTypes anchors, merged; when all three are
// empty the host anchor's own package is scanned.
type Scan struct {
	// Value is shorthand for BasePackages.
	Value string
	// BasePackages lists package roots, delimited like the configurer's.
	BasePackages string
	// BasePackageTypes anchors roots by value: the declaring package of
	// each anchor's type is scanned. Use a typed nil pointer for
	// interfaces: (*Taggable)(nil).
	BasePackageTypes []any

	// MarkerDirective and MarkerInterface narrow the scan. The marker may
	// be given as a fully-qualified name or anchored by value.
	MarkerDirective string
	MarkerInterface any

	// FactoryType, NameGenerator, DefaultScope, LazyInit and the resource
	// names mirror the configurer's fields.
	FactoryType         string
	NameGenerator       NameGenerator
	DefaultScope        string
	LazyInit            string
	SessionFactoryName  string
	SessionTemplateName string
}

// Registrar fans declarative Scan values out into configurer definitions,
// the programmatic stand-in for attribute-driven registration. The host
// anchor supplies the fallback package root and the definition names:
//
//	r := scan.Registrar{Host: App{}}
//	err := r.Register(c.Definitions(),
//	    scan.Scan{BasePackages: "example.com/app/mappers"},
//	    scan.Scan{BasePackages: "example.com/app/admin", MarkerDirective: "mapper"},
//	)
//
// Each Scan becomes one definition named
// "<hostType>#scan.Registrar#<ordinal>", so repeated registration is
// collision-free and re-runs overwrite rather than duplicate. Placeholder
// pre-resolution is always enabled on this path.
type Registrar struct {
	Host any
}

// Register writes one configurer definition per Scan into the registry.
func (r *Registrar) Register(reg *container.Registry, scans ...Scan) error {
	if r.Host == nil {
		return ErrNoHost
	}
	base := container.TypeKey(r.Host)
	for i, sc := range scans {
		def, err := r.definitionFor(sc)
		if err != nil {
			return fmt.Errorf("scan #%d: %w", i, err)
		}
		reg.Register(fmt.Sprintf("%s#scan.Registrar#%d", base, i), def)
	}
	return nil
}

func (r *Registrar) definitionFor(sc Scan) (*container.Definition, error) {
	var roots []string
	roots = append(roots, tokenizePackages(sc.Value)...)
	roots = append(roots, tokenizePackages(sc.BasePackages)...)
	for _, anchor := range sc.BasePackageTypes {
		pkg := packageOf(anchor)
		if pkg == "" {
			return nil, fmt.Errorf("anchor %T has no package", anchor)
		}
		roots = append(roots, pkg)
	}
	if len(roots) == 0 {
		pkg := packageOf(r.Host)
		if pkg == "" {
			return nil, fmt.Errorf("host %T has no package for the fallback root", r.Host)
		}
		roots = append(roots, pkg)
	}

	def := container.NewDefinition(container.TypeKey(&Configurer{}))
	def.FactoryType = ConfigurerFactoryType()
	def.SetProperty("basePackages", strings.Join(roots, ","))
	def.SetProperty("processPlaceholders", true)

	if sc.MarkerDirective != "" {
		def.SetProperty("markerDirective", sc.MarkerDirective)
	}
	if sc.MarkerInterface != nil {
		fqn, ok := sc.MarkerInterface.(string)
		if !ok {
			fqn = container.TypeKey(sc.MarkerInterface)
		}
		if fqn != "" {
			def.SetProperty("markerInterface", fqn)
		}
	}
	if sc.FactoryType != "" {
		def.SetProperty("factoryType", sc.FactoryType)
	}
	if sc.NameGenerator != nil {
		def.SetProperty("nameGenerator", sc.NameGenerator)
	}
	if sc.DefaultScope != "" {
		def.SetProperty("defaultScope", sc.DefaultScope)
	}
	if sc.LazyInit != "" {
		def.SetProperty("lazyInit", sc.LazyInit)
	}
	if sc.SessionFactoryName != "" {
		def.SetProperty("sessionFactoryName", sc.SessionFactoryName)
	}
	if sc.SessionTemplateName != "" {
		def.SetProperty("sessionTemplateName", sc.SessionTemplateName)
	}
	return def, nil
}

// packageOf returns the import path of a value's type, pointers
// dereferenced.
func packageOf(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.PkgPath()
}
