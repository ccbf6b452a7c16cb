package container

import "reflect"

// AutowireMode controls how unset dependencies of a constructed component
// are filled after explicit arguments and properties have been applied.
type AutowireMode int

const (
	// AutowireNone leaves unset fields alone.
	AutowireNone AutowireMode = iota
	// AutowireByType fills exported, unset fields with the unique
	// registered component matching the field's type, when one exists.
	AutowireByType
)

func (m AutowireMode) String() string {
	switch m {
	case AutowireNone:
		return "none"
	case AutowireByType:
		return "byType"
	default:
		return "unknown"
	}
}

// PropertyValues holds named configuration values applied to a component
// after construction. Values may be literals, Ref references (resolved
// through the container first) or pre-built instances.
type PropertyValues map[string]any

// Ref is a deferred by-name reference. When a Ref appears among a
// definition's arguments or property values, the container resolves the
// named component at construction time and substitutes the result.
type Ref struct {
	Name string
}

// Definition describes how the container constructs one component.
//
// TypeName records the fully-qualified type of the product and never
// changes once set. FactoryType names the registered constructor used to
// build it; a definition without one cannot be constructed.
type Definition struct {
	// TypeName is the fully-qualified product type, e.g.
	// "example.com/app.UserMapper".
	TypeName string

	// FactoryType names a constructor registered via RegisterFactory.
	FactoryType string

	// Args are passed to the factory constructor in order.
	Args []any

	// Properties are applied to exported fields of the constructed
	// component by name ("addToConfig" sets the field AddToConfig).
	Properties PropertyValues

	// Scope is the lifetime of the component. Empty and "singleton" mean
	// cached once; "prototype" means fresh per resolution; any other value
	// routes through a registered Scope.
	Scope string

	// Lazy suppresses eager construction of singletons during Bootstrap.
	Lazy bool

	// Autowire selects the fallback strategy for unset dependencies.
	Autowire AutowireMode

	// AutowireCandidate marks whether this definition may be picked when
	// autowiring others. Hidden scoped targets clear it.
	AutowireCandidate bool

	// Decorated points at the hidden target when this definition is a
	// scoped proxy produced by CreateScopedProxy.
	Decorated *Holder
}

// NewDefinition returns a definition for the given product type with an
// empty (singleton) scope and no factory type.
func NewDefinition(typeName string) *Definition {
	return &Definition{
		TypeName:          typeName,
		Properties:        PropertyValues{},
		AutowireCandidate: true,
	}
}

// AddArg appends a constructor argument and returns the definition for
// chaining.
func (d *Definition) AddArg(v any) *Definition {
	d.Args = append(d.Args, v)
	return d
}

// SetProperty sets a named property value and returns the definition for
// chaining.
func (d *Definition) SetProperty(name string, v any) *Definition {
	if d.Properties == nil {
		d.Properties = PropertyValues{}
	}
	d.Properties[name] = v
	return d
}

// Property reports the value of a named property.
func (d *Definition) Property(name string) (any, bool) {
	v, ok := d.Properties[name]
	return v, ok
}

// IsSingleton reports whether the definition describes a singleton.
func (d *Definition) IsSingleton() bool {
	return d.Scope == "" || d.Scope == ScopeSingleton
}

// Holder pairs a definition with the name it is (or will be) registered
// under.
type Holder struct {
	Name       string
	Definition *Definition
}

// TypeKey returns the canonical registry key for a Go type:
// the package path joined with the type name, pointers stripped.
//
//	container.TypeKey(&mapper.Factory{})  // "github.com/km-arc/go-batis/mapper.Factory"
//	container.TypeKey(t)                  // works with a reflect.Type too
func TypeKey(v any) string {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
