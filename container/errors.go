package container

import "errors"

var (
	// ErrNotFound is returned when no definition or instance is registered
	// under the requested name.
	ErrNotFound = errors.New("no component registered under this name")

	// ErrNoFactoryType is returned when a definition carries no factory
	// type. Interface-only descriptors are unconstructible until a
	// post-processor rewrites them.
	ErrNoFactoryType = errors.New("definition has no factory type")

	// ErrUnknownFactoryType is returned when a definition names a factory
	// type that was never registered.
	ErrUnknownFactoryType = errors.New("factory type is not registered")

	// ErrCircularDependency is returned when a component resolves itself,
	// directly or through intermediaries, while being constructed.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrNoSuchScope is returned when a definition names a scope that was
	// never registered with the container.
	ErrNoSuchScope = errors.New("scope is not registered")

	// ErrAmbiguousCandidate is returned by autowiring when more than one
	// registered component satisfies a dependency.
	ErrAmbiguousCandidate = errors.New("multiple candidates satisfy the dependency")
)
