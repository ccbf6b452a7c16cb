// Package container provides a definition-based IoC (Inversion of Control)
// container: components are described by data descriptors (Definition) held
// in a Registry, and constructed on demand through named factory types.
//
// # Overview
//
// Unlike closure-based containers, where a binding captures its construction
// logic at registration time, this container keeps construction *declarative*
// until bootstrap completes. A Definition records the product type, the
// factory type, constructor arguments, property values, scope and autowire
// mode. Because descriptors are plain data, registry post-processors can
// rewrite them before anything is built. That rewrite window is what makes
// scanning pipelines (see the scan package) possible.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register definitions and instances:
//     c.Definitions().Register("userMapper", def)
//     c.Instance("sessionFactory", sf)
//  3. Bootstrap: c.Bootstrap(ctx)
//     a. registry post-processors run (may add/rewrite definitions)
//     b. definition post-processors run (may rewrite property values)
//     c. eager singletons are constructed
//  4. Resolve components
//
// # Definitions
//
//	def := container.NewDefinition("example.com/app.UserMapper")
//	def.FactoryType = mapper.FactoryType()
//	def.AddArg("example.com/app.UserMapper")
//	def.SetProperty("addToConfig", true)
//	c.Definitions().Register("userMapper", def)
//
// # Factory types
//
// A factory type is a named constructor registered once, usually in an
// init function:
//
//	func init() {
//	    container.RegisterFactory(container.TypeKey(&Factory{}), newFactory)
//	}
//
// If the constructed component implements ObjectFactory, the container
// treats it as a stand-in: dependents receive the product of Object(), not
// the factory component itself. Prefix a name with "&" to resolve the
// factory component instead of its product.
//
// # Resolving
//
//	// Untyped
//	raw, err := c.Resolve("userMapper")
//
//	// Generic (no type assertion required)
//	m, err := container.Resolve[UserMapper](c, "userMapper")
//
// Resolve unwraps scoped proxies transparently: when a name resolves to a
// *ScopedRef and the requested type is anything else, the target is fetched
// through the ref first.
//
// # Scopes
//
// A Definition with an empty or "singleton" scope is cached after first
// construction. "prototype" constructs a fresh component per resolution.
// Any other scope name routes through a registered Scope implementation,
// with the resolution context passed along:
//
//	c.RegisterScope("request", myRequestScope)
//	v, err := c.ResolveCtx(ctx, "statsMapper")
//
// CreateScopedProxy hides a non-singleton target under the
// "scopedTarget." prefix and exposes a singleton proxy definition under the
// original name, so dependents hold one stable ref while targets come and
// go per scope.
//
// # Post-processors
//
//	type tweak struct{}
//
//	func (tweak) ProcessRegistry(reg *container.Registry) error {
//	    // add or rewrite definitions before construction
//	    return nil
//	}
//
//	c.AddRegistryPostProcessor(tweak{})
//
// Post-processors may also be registered as definitions; Bootstrap discovers
// them by product type and constructs them ahead of everything else.
package container
