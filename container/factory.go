package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// FactoryFunc constructs a bare component. The definition's Args are passed
// through unchanged except that Ref values are resolved first. Constructors
// must tolerate being invoked with no arguments: RegisterFactory probes each
// constructor once to learn the product type.
type FactoryFunc func(args ...any) (any, error)

// ObjectFactory is implemented by factory components that stand in for the
// object they produce. When a resolved component implements it, the
// container hands dependents the result of Object() instead of the factory
// component itself. ObjectType reports the fully-qualified type of the
// product, or "" when not yet known.
type ObjectFactory interface {
	Object() (any, error)
	ObjectType() string
}

var factoriesMu sync.RWMutex
var factories = make(map[string]*factoryEntry)

type factoryEntry struct {
	fn      FactoryFunc
	product reflect.Type // probed at registration, nil if the probe failed
}

// RegisterFactory makes a factory type available to all containers under
// the given name, conventionally TypeKey of the constructed component. It
// is intended to be called from init functions. Registering a nil
// constructor or the same name twice panics.
func RegisterFactory(name string, fn FactoryFunc) {
	if name == "" {
		panic("container: RegisterFactory called with empty name")
	}
	if fn == nil {
		panic("container: RegisterFactory called with nil constructor")
	}
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[name]; dup {
		panic(fmt.Sprintf("container: RegisterFactory called twice for %q", name))
	}
	entry := &factoryEntry{fn: fn}
	if probe, err := fn(); err == nil && probe != nil {
		entry.product = reflect.TypeOf(probe)
	}
	factories[name] = entry
}

// FactoryTypes returns the names of all registered factory types, sorted.
func FactoryTypes() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func factoryFor(name string) (*factoryEntry, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	e, ok := factories[name]
	return e, ok
}

// productImplements reports whether the probed product type of a factory
// type satisfies t: implements it for interfaces, is assignable for
// concrete types.
func productImplements(factoryType string, t reflect.Type) bool {
	e, ok := factoryFor(factoryType)
	if !ok || e.product == nil || t == nil {
		return false
	}
	if t.Kind() == reflect.Interface {
		return e.product.Implements(t)
	}
	return e.product.AssignableTo(t)
}
