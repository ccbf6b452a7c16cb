package container

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FactoryPrefix addresses the factory component itself rather than the
// product it stands in for: Resolve("&userMapper") returns the ObjectFactory
// that Resolve("userMapper") would unwrap.
const FactoryPrefix = "&"

// Environment resolves ${...} placeholders in strings. The config package
// provides the standard implementation; the container only needs this one
// method of it.
type Environment interface {
	ResolvePlaceholders(s string) string
}

// Extender decorates a freshly constructed component before it is cached or
// handed out.
type Extender func(instance any, c *Container) any

// Container constructs components from the definitions held in its
// Registry. All exported methods are safe for concurrent use once
// Bootstrap has returned; Bootstrap itself is single-threaded.
type Container struct {
	mu        sync.RWMutex
	registry  *Registry
	instances map[string]any
	aliases   map[string]string
	extenders map[string][]Extender
	scopes    map[string]Scope
	env       Environment
	log       *zap.Logger

	registryPPs   []RegistryPostProcessor
	definitionPPs []DefinitionPostProcessor

	booted bool
}

// New returns an empty container with a no-op logger.
func New() *Container {
	return &Container{
		registry:  NewRegistry(),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
		extenders: make(map[string][]Extender),
		scopes:    make(map[string]Scope),
		log:       zap.NewNop(),
	}
}

// SetLogger replaces the container's logger. Components implementing
// LoggerAware receive it when they are constructed.
func (c *Container) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = l
}

func (c *Container) logger() *zap.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.log
}

// Definitions exposes the definition registry for programmatic
// registration and for post-processors.
func (c *Container) Definitions() *Registry { return c.registry }

// SetEnvironment attaches the property environment used for placeholder
// resolution.
func (c *Container) SetEnvironment(env Environment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.env = env
}

// Environment returns the attached property environment, or nil.
func (c *Container) Environment() Environment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.env
}

// ── Registration ──────────────────────────────────────────────────────────────

// Instance registers a pre-built component under a name. Instances take
// part in autowiring and capability enumeration like constructed
// singletons do.
func (c *Container) Instance(name string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[name] = v
}

// Alias registers an alternative name for a component.
func (c *Container) Alias(name, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = name
}

// Extend decorates the named component after construction. For singletons
// already constructed the decoration applies immediately.
func (c *Container) Extend(name string, fn Extender) {
	c.mu.Lock()
	key := c.canonicalLocked(name)
	c.extenders[key] = append(c.extenders[key], fn)
	inst, resolved := c.instances[key]
	c.mu.Unlock()
	if resolved {
		inst = fn(inst, c)
		c.mu.Lock()
		c.instances[key] = inst
		c.mu.Unlock()
	}
}

// RegisterScope makes a custom scope available under a name.
func (c *Container) RegisterScope(name string, s Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scopes[name] = s
}

// AddRegistryPostProcessor registers a post-processor instance for the
// first bootstrap phase. Instances run before definition-declared
// post-processors.
func (c *Container) AddRegistryPostProcessor(pp RegistryPostProcessor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registryPPs = append(c.registryPPs, pp)
}

// AddDefinitionPostProcessor registers a post-processor instance for the
// second bootstrap phase.
func (c *Container) AddDefinitionPostProcessor(pp DefinitionPostProcessor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.definitionPPs = append(c.definitionPPs, pp)
}

// ── Bootstrap ─────────────────────────────────────────────────────────────────

// Bootstrap runs the container's three phases: registry post-processors,
// definition post-processors, then eager construction of non-lazy
// singletons. It is idempotent; the first error aborts it.
func (c *Container) Bootstrap(ctx context.Context) error {
	c.mu.RLock()
	booted := c.booted
	c.mu.RUnlock()
	if booted {
		return nil
	}

	if err := c.runRegistryPostProcessors(ctx); err != nil {
		return err
	}
	if err := c.runDefinitionPostProcessors(ctx); err != nil {
		return err
	}

	for _, name := range c.registry.Names() {
		def, ok := c.registry.Definition(name)
		if !ok || !def.IsSingleton() || def.Lazy {
			continue
		}
		if _, err := c.resolve(ctx, name, nil); err != nil {
			return fmt.Errorf("eager construction of %q: %w", name, err)
		}
	}

	c.mu.Lock()
	c.booted = true
	c.mu.Unlock()
	c.logger().Debug("container bootstrapped", zap.Int("definitions", c.registry.Len()))
	return nil
}

// Booted reports whether Bootstrap has completed.
func (c *Container) Booted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.booted
}

// runRegistryPostProcessors invokes explicitly added post-processors, then
// ones registered as instances, then definition-declared ones. Processors
// may register further post-processor definitions; the loop continues until
// no new ones appear.
func (c *Container) runRegistryPostProcessors(ctx context.Context) error {
	c.mu.RLock()
	pps := append([]RegistryPostProcessor(nil), c.registryPPs...)
	c.mu.RUnlock()
	for _, name := range c.instanceNamesImplementing(reflect.TypeOf((*RegistryPostProcessor)(nil)).Elem()) {
		c.mu.RLock()
		inst := c.instances[name]
		c.mu.RUnlock()
		if pp, ok := inst.(RegistryPostProcessor); ok {
			pps = append(pps, pp)
		}
	}
	for _, pp := range pps {
		if err := pp.ProcessRegistry(c.registry); err != nil {
			return err
		}
	}

	iface := reflect.TypeOf((*RegistryPostProcessor)(nil)).Elem()
	done := make(map[string]bool)
	for {
		ran := false
		for _, h := range c.registry.Holders() {
			if done[h.Name] || !productImplements(h.Definition.FactoryType, iface) {
				continue
			}
			done[h.Name] = true
			v, err := c.resolve(ctx, h.Name, nil)
			if err != nil {
				return fmt.Errorf("constructing registry post-processor %q: %w", h.Name, err)
			}
			pp, ok := v.(RegistryPostProcessor)
			if !ok {
				continue
			}
			if err := pp.ProcessRegistry(c.registry); err != nil {
				return err
			}
			ran = true
		}
		if !ran {
			return nil
		}
	}
}

// runDefinitionPostProcessors invokes property configurers ordered by
// ascending Order, then the remaining definition post-processors. Like the
// registry phase, processors are gathered from explicit adds, registered
// instances and definitions.
func (c *Container) runDefinitionPostProcessors(ctx context.Context) error {
	c.mu.RLock()
	all := append([]DefinitionPostProcessor(nil), c.definitionPPs...)
	c.mu.RUnlock()

	iface := reflect.TypeOf((*DefinitionPostProcessor)(nil)).Elem()
	for _, name := range c.instanceNamesImplementing(iface) {
		c.mu.RLock()
		inst := c.instances[name]
		c.mu.RUnlock()
		if pp, ok := inst.(DefinitionPostProcessor); ok {
			all = append(all, pp)
		}
	}
	for _, h := range c.registry.Holders() {
		if !productImplements(h.Definition.FactoryType, iface) {
			continue
		}
		v, err := c.resolve(ctx, h.Name, nil)
		if err != nil {
			return fmt.Errorf("constructing definition post-processor %q: %w", h.Name, err)
		}
		if pp, ok := v.(DefinitionPostProcessor); ok {
			all = append(all, pp)
		}
	}

	var configurers []PropertyConfigurer
	var plain []DefinitionPostProcessor
	for _, pp := range all {
		if pc, ok := pp.(PropertyConfigurer); ok {
			configurers = append(configurers, pc)
		} else {
			plain = append(plain, pp)
		}
	}
	sort.SliceStable(configurers, func(i, j int) bool {
		return configurers[i].Order() < configurers[j].Order()
	})

	for _, pc := range configurers {
		if err := pc.ProcessDefinitions(c.registry); err != nil {
			return err
		}
	}
	for _, pp := range plain {
		if err := pp.ProcessDefinitions(c.registry); err != nil {
			return err
		}
	}
	return nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns the component registered under name, constructing it if
// needed. Scoped definitions need ResolveCtx.
func (c *Container) Resolve(name string) (any, error) {
	return c.ResolveCtx(context.Background(), name)
}

// ResolveCtx resolves a component with a context. The context addresses
// custom scopes and is not otherwise consulted.
func (c *Container) ResolveCtx(ctx context.Context, name string) (any, error) {
	return c.resolve(ctx, name, nil)
}

// resolve is the internal resolver. stack carries the names currently under
// construction in this resolution chain for cycle detection.
func (c *Container) resolve(ctx context.Context, name string, stack []string) (any, error) {
	c.mu.RLock()
	key := c.canonicalLocked(name)
	c.mu.RUnlock()

	if strings.HasPrefix(key, FactoryPrefix) {
		return c.resolveFactoryComponent(ctx, strings.TrimPrefix(key, FactoryPrefix), stack)
	}

	c.mu.RLock()
	inst, cached := c.instances[key]
	c.mu.RUnlock()
	if cached {
		return inst, nil
	}

	def, ok := c.registry.Definition(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	for _, building := range stack {
		if building == key {
			return nil, fmt.Errorf("%w: %s", ErrCircularDependency,
				strings.Join(append(stack, key), " -> "))
		}
	}
	stack = append(stack, key)

	build := func() (any, error) {
		v, err := c.construct(ctx, key, def, stack, true)
		if err != nil {
			return nil, err
		}
		return c.applyExtenders(key, v), nil
	}

	switch {
	case def.IsSingleton():
		v, err := build()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.instances[key] = v
		c.mu.Unlock()
		return v, nil
	case def.Scope == ScopePrototype:
		return build()
	default:
		c.mu.RLock()
		sc, found := c.scopes[def.Scope]
		c.mu.RUnlock()
		if !found {
			return nil, fmt.Errorf("%w: %q (definition %q)", ErrNoSuchScope, def.Scope, key)
		}
		return sc.Get(ctx, key, build)
	}
}

// resolveFactoryComponent returns the factory component behind a
// definition without unwrapping it.
func (c *Container) resolveFactoryComponent(ctx context.Context, name string, stack []string) (any, error) {
	key := FactoryPrefix + name
	c.mu.RLock()
	inst, cached := c.instances[key]
	c.mu.RUnlock()
	if cached {
		return inst, nil
	}
	def, ok := c.registry.Definition(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	v, err := c.construct(ctx, name, def, append(stack, key), false)
	if err != nil {
		return nil, err
	}
	if def.IsSingleton() {
		c.mu.Lock()
		c.instances[key] = v
		c.mu.Unlock()
	}
	return v, nil
}

// construct builds one component: factory call, properties, autowiring,
// lifecycle hooks, and finally the ObjectFactory unwrap when requested.
func (c *Container) construct(ctx context.Context, name string, def *Definition, stack []string, unwrap bool) (any, error) {
	if def.FactoryType == "" {
		return nil, fmt.Errorf("%w: %q (type %s)", ErrNoFactoryType, name, def.TypeName)
	}
	entry, ok := factoryFor(def.FactoryType)
	if !ok {
		return nil, fmt.Errorf("%w: %q (definition %q)", ErrUnknownFactoryType, def.FactoryType, name)
	}

	args, err := c.resolveValues(ctx, def.Args, stack)
	if err != nil {
		return nil, fmt.Errorf("arguments of %q: %w", name, err)
	}
	obj, err := entry.fn(args...)
	if err != nil {
		return nil, fmt.Errorf("constructing %q: %w", name, err)
	}

	if err := c.applyProperties(ctx, obj, def, stack); err != nil {
		return nil, fmt.Errorf("configuring %q: %w", name, err)
	}
	if def.Autowire == AutowireByType {
		rv := reflect.ValueOf(obj)
		if rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Struct {
			if err := c.autowireStruct(ctx, rv.Elem(), stack); err != nil {
				return nil, fmt.Errorf("autowiring %q: %w", name, err)
			}
		}
	}

	if named, ok := obj.(NamedComponent); ok {
		named.SetComponentName(name)
	}
	if aware, ok := obj.(ContainerAware); ok {
		aware.SetContainer(c)
	}
	if la, ok := obj.(LoggerAware); ok {
		la.SetLogger(c.logger())
	}
	if init, ok := obj.(Initializer); ok {
		if err := init.Init(); err != nil {
			return nil, fmt.Errorf("initializing %q: %w", name, err)
		}
	}

	if !unwrap {
		return obj, nil
	}
	if f, ok := obj.(ObjectFactory); ok {
		if def.IsSingleton() {
			c.mu.Lock()
			c.instances[FactoryPrefix+name] = obj
			c.mu.Unlock()
		}
		product, err := f.Object()
		if err != nil {
			return nil, fmt.Errorf("producing %q: %w", name, err)
		}
		c.logger().Debug("factory component produced object",
			zap.String("component", name), zap.String("type", def.TypeName))
		return product, nil
	}
	return obj, nil
}

// resolveValues substitutes Ref values with the components they name.
func (c *Container) resolveValues(ctx context.Context, values []any, stack []string) ([]any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		r, err := c.resolveValue(ctx, v, stack)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (c *Container) resolveValue(ctx context.Context, v any, stack []string) (any, error) {
	ref, ok := v.(Ref)
	if !ok {
		return v, nil
	}
	return c.resolve(ctx, ref.Name, stack)
}

// applyProperties sets exported fields named by the definition's property
// values. Property names use lower-camel case; "addToConfig" sets the
// field AddToConfig, including fields promoted from embedded structs.
func (c *Container) applyProperties(ctx context.Context, obj any, def *Definition, stack []string) error {
	if len(def.Properties) == 0 {
		return nil
	}
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("component of type %T cannot receive properties", obj)
	}
	elem := rv.Elem()

	names := make([]string, 0, len(def.Properties))
	for n := range def.Properties {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, pname := range names {
		field := elem.FieldByName(exportedFieldName(pname))
		if !field.IsValid() || !field.CanSet() {
			return fmt.Errorf("no settable field for property %q on %T", pname, obj)
		}
		val, err := c.resolveValue(ctx, def.Properties[pname], stack)
		if err != nil {
			return fmt.Errorf("property %q: %w", pname, err)
		}
		if err := assignValue(field, val); err != nil {
			return fmt.Errorf("property %q: %w", pname, err)
		}
	}
	return nil
}

func exportedFieldName(property string) string {
	if property == "" {
		return ""
	}
	return strings.ToUpper(property[:1]) + property[1:]
}

// assignValue sets a field from a property value, parsing strings into
// bools and integers so placeholder-resolved values keep working.
func assignValue(field reflect.Value, v any) error {
	if v == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}
	if s, ok := v.(string); ok {
		switch field.Kind() {
		case reflect.Bool:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("parsing %q as bool: %w", s, err)
			}
			field.SetBool(b)
			return nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("parsing %q as int: %w", s, err)
			}
			field.SetInt(n)
			return nil
		case reflect.String:
			field.SetString(s)
			return nil
		}
	}
	if rv.Kind() == field.Kind() && rv.Type().ConvertibleTo(field.Type()) {
		field.Set(rv.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to field of type %s", v, field.Type())
}

// autowireStruct fills unset exported fields of interface or pointer kind
// with the unique registered candidate for the field's type. Zero
// candidates skip the field; several are an error. Fields promoted from
// embedded structs are wired too.
func (c *Container) autowireStruct(ctx context.Context, elem reflect.Value, stack []string) error {
	t := elem.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := elem.Field(i)
		if f.Anonymous {
			target := fv
			if target.Kind() == reflect.Ptr {
				if target.IsNil() {
					continue
				}
				target = target.Elem()
			}
			if target.Kind() == reflect.Struct && target.CanAddr() {
				if err := c.autowireStruct(ctx, target, stack); err != nil {
					return err
				}
			}
			continue
		}
		if !fv.CanSet() || !fv.IsZero() {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Interface:
			if f.Type.NumMethod() == 0 {
				continue
			}
		case reflect.Ptr:
		default:
			continue
		}

		candidates := c.candidatesFor(f.Type)
		switch len(candidates) {
		case 0:
			continue
		case 1:
			v, err := c.resolve(ctx, candidates[0], stack)
			if err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
			rv := reflect.ValueOf(v)
			if rv.IsValid() && rv.Type().AssignableTo(f.Type) {
				fv.Set(rv)
			}
		default:
			return fmt.Errorf("%w: field %s matches %s",
				ErrAmbiguousCandidate, f.Name, strings.Join(candidates, ", "))
		}
	}
	return nil
}

// instanceNamesImplementing returns the names of registered instances
// whose type implements the given interface, sorted for determinism.
func (c *Container) instanceNamesImplementing(iface reflect.Type) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []string
	for name, inst := range c.instances {
		if strings.HasPrefix(name, FactoryPrefix) || inst == nil {
			continue
		}
		if reflect.TypeOf(inst).Implements(iface) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// candidatesFor returns the names of registered components whose type
// satisfies ft: instances by assignability, definitions by declared
// product type.
func (c *Container) candidatesFor(ft reflect.Type) []string {
	want := TypeKey(ft)
	seen := make(map[string]bool)
	var out []string

	c.mu.RLock()
	for name, inst := range c.instances {
		if strings.HasPrefix(name, FactoryPrefix) || strings.HasPrefix(name, ScopedTargetPrefix) {
			continue
		}
		if inst != nil && reflect.TypeOf(inst).AssignableTo(ft) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	c.mu.RUnlock()

	for _, h := range c.registry.Holders() {
		if seen[h.Name] || !h.Definition.AutowireCandidate {
			continue
		}
		if h.Definition.TypeName == want {
			seen[h.Name] = true
			out = append(out, h.Name)
		}
	}
	sort.Strings(out)
	return out
}

func (c *Container) applyExtenders(key string, instance any) any {
	c.mu.RLock()
	exts := append([]Extender(nil), c.extenders[key]...)
	c.mu.RUnlock()
	for _, ext := range exts {
		instance = ext(instance, c)
	}
	return instance
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether a definition or instance is registered under the
// name.
func (c *Container) Bound(name string) bool {
	c.mu.RLock()
	key := c.canonicalLocked(name)
	_, hasInstance := c.instances[key]
	c.mu.RUnlock()
	return hasInstance || c.registry.Contains(key)
}

// Resolved reports whether the named singleton has been constructed.
func (c *Container) Resolved(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonicalLocked(name)]
	return ok
}

// Forget removes the named definition and any cached instance.
func (c *Container) Forget(name string) {
	c.mu.Lock()
	key := c.canonicalLocked(name)
	delete(c.instances, key)
	delete(c.instances, FactoryPrefix+key)
	c.mu.Unlock()
	c.registry.Remove(key)
}

// Flush resets cached instances, aliases and extenders, keeping
// definitions, scopes and post-processors in place.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances = make(map[string]any)
	c.aliases = make(map[string]string)
	c.extenders = make(map[string][]Extender)
	c.booted = false
}

// canonicalLocked follows the alias chain to the registered name. Callers
// hold at least a read lock.
func (c *Container) canonicalLocked(name string) string {
	seen := 0
	for {
		target, ok := c.aliases[name]
		if !ok || seen > len(c.aliases) {
			return name
		}
		name = target
		seen++
	}
}

// ── Generic accessors ─────────────────────────────────────────────────────────

// Resolve resolves a component and asserts its type. Scoped proxies are
// unwrapped transparently unless T is *ScopedRef itself.
//
//	m, err := container.Resolve[UserMapper](c, "userMapper")
func Resolve[T any](c *Container, name string) (T, error) {
	return ResolveCtx[T](context.Background(), c, name)
}

// ResolveCtx is Resolve with a context for scope addressing.
func ResolveCtx[T any](ctx context.Context, c *Container, name string) (T, error) {
	var zero T
	v, err := c.ResolveCtx(ctx, name)
	if err != nil {
		return zero, err
	}
	if ref, ok := v.(*ScopedRef); ok {
		if _, wantRef := any(zero).(*ScopedRef); !wantRef {
			if v, err = ref.Get(ctx); err != nil {
				return zero, err
			}
		}
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("component %q is %T, not %s",
			name, v, reflect.TypeOf((*T)(nil)).Elem())
	}
	return typed, nil
}

// MustResolve is Resolve for wiring code where a failure is fatal.
func MustResolve[T any](c *Container, name string) T {
	v, err := Resolve[T](c, name)
	if err != nil {
		panic(fmt.Sprintf("container: %v", err))
	}
	return v
}

// ComponentsOf returns all registered components implementing T, keyed by
// name: pre-built instances plus singleton definitions whose factory
// product type implements T, constructed on demand.
func ComponentsOf[T any](c *Container) (map[string]T, error) {
	return ComponentsOfCtx[T](context.Background(), c)
}

// ComponentsOfCtx is ComponentsOf with a context for scope addressing.
func ComponentsOfCtx[T any](ctx context.Context, c *Container) (map[string]T, error) {
	out := make(map[string]T)

	c.mu.RLock()
	snapshot := make(map[string]any, len(c.instances))
	for name, inst := range c.instances {
		snapshot[name] = inst
	}
	c.mu.RUnlock()
	for name, inst := range snapshot {
		if strings.HasPrefix(name, FactoryPrefix) {
			continue
		}
		if v, ok := inst.(T); ok {
			out[name] = v
		}
	}

	iface := reflect.TypeOf((*T)(nil)).Elem()
	for _, h := range c.registry.Holders() {
		if _, dup := out[h.Name]; dup {
			continue
		}
		if !h.Definition.IsSingleton() || !productImplements(h.Definition.FactoryType, iface) {
			continue
		}
		v, err := c.resolve(ctx, h.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("constructing %q: %w", h.Name, err)
		}
		if typed, ok := v.(T); ok {
			out[h.Name] = typed
		}
	}
	return out, nil
}
