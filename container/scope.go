package container

import (
	"context"
	"errors"
)

const (
	// ScopeSingleton is the default lifetime: constructed once, cached.
	ScopeSingleton = "singleton"
	// ScopePrototype constructs a fresh component per resolution.
	ScopePrototype = "prototype"
	// ScopedTargetPrefix prefixes the hidden registry name of a definition
	// wrapped by CreateScopedProxy.
	ScopedTargetPrefix = "scopedTarget."
)

// Scope stores component instances for a custom lifetime. Get returns the
// instance held for name in the scope addressed by ctx, calling build when
// none exists yet. Remove evicts the named instance and reports whether it
// was present.
type Scope interface {
	Get(ctx context.Context, name string, build func() (any, error)) (any, error)
	Remove(ctx context.Context, name string) (any, bool)
}

// ScopedRef is the stand-in produced by scoped proxy definitions. Holders
// keep one stable ref; every Get re-resolves the hidden target through the
// container, so the instance returned tracks the scope addressed by ctx.
type ScopedRef struct {
	target string
	c      *Container
}

// TargetName returns the hidden registry name this ref resolves.
func (r *ScopedRef) TargetName() string { return r.target }

// Get resolves the current target instance for the scope addressed by ctx.
func (r *ScopedRef) Get(ctx context.Context) (any, error) {
	if r.c == nil {
		return nil, errors.New("scoped ref is not bound to a container")
	}
	return r.c.ResolveCtx(ctx, r.target)
}

// ScopedProxyFactory is the factory component behind definitions created by
// CreateScopedProxy. Its product is a *ScopedRef bound to the hidden target
// name carried in the "targetName" property.
type ScopedProxyFactory struct {
	TargetName string

	container *Container
}

// SetContainer satisfies ContainerAware.
func (f *ScopedProxyFactory) SetContainer(c *Container) { f.container = c }

// Object returns the ScopedRef stand-in for the hidden target.
func (f *ScopedProxyFactory) Object() (any, error) {
	if f.TargetName == "" {
		return nil, errors.New("scoped proxy has no target name")
	}
	return &ScopedRef{target: f.TargetName, c: f.container}, nil
}

// ObjectType reports the stand-in type.
func (f *ScopedProxyFactory) ObjectType() string { return TypeKey(&ScopedRef{}) }

// ScopedProxyFactoryType returns the factory type name of the built-in
// scoped proxy factory.
func ScopedProxyFactoryType() string { return TypeKey(&ScopedProxyFactory{}) }

func init() {
	RegisterFactory(ScopedProxyFactoryType(), func(args ...any) (any, error) {
		return &ScopedProxyFactory{}, nil
	})
}

// CreateScopedProxy re-registers the held definition under the hidden
// "scopedTarget." name and returns a holder for a singleton proxy
// definition exposing the original name. The caller registers the returned
// holder; the hidden target is registered here. The target keeps its scope
// and is withdrawn from autowiring so only the proxy is visible to
// dependents.
func CreateScopedProxy(h *Holder, reg *Registry) *Holder {
	targetName := ScopedTargetPrefix + h.Name
	target := h.Definition
	target.AutowireCandidate = false

	proxy := NewDefinition(target.TypeName)
	proxy.FactoryType = ScopedProxyFactoryType()
	proxy.SetProperty("targetName", targetName)
	proxy.Lazy = target.Lazy
	proxy.Decorated = &Holder{Name: targetName, Definition: target}

	reg.Register(targetName, target)
	return &Holder{Name: h.Name, Definition: proxy}
}
