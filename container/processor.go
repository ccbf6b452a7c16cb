package container

import "go.uber.org/zap"

// RegistryPostProcessor runs during the first bootstrap phase, after all
// programmatic registrations and before any component is constructed. It
// may register new definitions or rewrite existing ones. Scanning entry
// points implement this.
type RegistryPostProcessor interface {
	ProcessRegistry(reg *Registry) error
}

// DefinitionPostProcessor runs during the second bootstrap phase, after
// every RegistryPostProcessor and still before eager construction. It may
// rewrite definitions but must not add or remove them.
type DefinitionPostProcessor interface {
	ProcessDefinitions(reg *Registry) error
}

// PropertyConfigurer is a DefinitionPostProcessor that rewrites definition
// property values from external property sources (placeholder resolution,
// per-definition overrides). Configurers run before plain definition
// post-processors, ordered by ascending Order.
type PropertyConfigurer interface {
	DefinitionPostProcessor
	Order() int
}

// ── Lifecycle hooks ───────────────────────────────────────────────────────────

// Initializer is implemented by components that need a validation or setup
// step after arguments, properties and autowiring have been applied. A
// returned error aborts the resolution.
type Initializer interface {
	Init() error
}

// NamedComponent is implemented by components that want to know the name
// they were registered under.
type NamedComponent interface {
	SetComponentName(name string)
}

// ContainerAware is implemented by components that need a handle on the
// container constructing them.
type ContainerAware interface {
	SetContainer(c *Container)
}

// LoggerAware components receive the container's logger during
// construction, before Init runs.
type LoggerAware interface {
	SetLogger(l *zap.Logger)
}
