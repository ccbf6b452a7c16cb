package scan

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/km-arc/go-batis/container"
	"github.com/km-arc/go-batis/mapper"
	"github.com/km-arc/go-batis/metadata"
	"github.com/km-arc/go-batis/session"
)

// PackageMarkerSuffix names the convention for package anchor types:
// an exported interface called PackageMarker exists only to give tooling a
// stable reference to its package. Scanners always exclude such types.
const PackageMarkerSuffix = "PackageMarker"

// scopeDirective declares a non-default scope on a mapper interface:
//
//	//batis:scope request proxy
//
// The first argument names the scope; a trailing "proxy" wraps the
// candidate in a scoped proxy at discovery time.
const scopeDirective = "scope"

// NameGenerator derives the registry name for a discovered type.
type NameGenerator func(m *metadata.TypeMeta) string

// DefaultNameGenerator lower-cases the leading character of the simple
// type name, unless the second character is upper case too:
// "UserMapper" becomes "userMapper", "URLMapper" stays "URLMapper".
func DefaultNameGenerator(m *metadata.TypeMeta) string {
	name := m.Name
	if len(name) > 1 && name[1] >= 'A' && name[1] <= 'Z' {
		return name
	}
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// Scanner discovers mapper interfaces under package roots, registers a
// definition per candidate and rewrites each definition to construct
// through a mapper factory bound to the session resource.
//
// The zero scanner is not usable; NewScanner wires the registry, the type
// source and the defaults. Call RegisterFilters before Scan.
type Scanner struct {
	registry *container.Registry
	source   metadata.Source
	log      *zap.Logger

	includeFilters []TypeFilter
	excludeFilters []TypeFilter

	addToConfig bool
	lazyInit    bool

	sessionFactory      session.Factory
	sessionTemplate     *session.Template
	sessionFactoryName  string
	sessionTemplateName string

	markerDirective string
	markerInterface string

	factoryType  string
	defaultScope string
	nameGen      NameGenerator
}

// NewScanner returns a scanner over the given registry and type source
// with the defaults: register into the session configuration, eager
// construction, the mapper package's factory type and lower-camel names.
func NewScanner(reg *container.Registry, src metadata.Source) *Scanner {
	return &Scanner{
		registry:    reg,
		source:      src,
		log:         zap.NewNop(),
		addToConfig: true,
		factoryType: mapper.FactoryType(),
		nameGen:     DefaultNameGenerator,
	}
}

// ── Configuration ─────────────────────────────────────────────────────────────

// SetLogger replaces the scanner's logger.
func (s *Scanner) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// SetAddToConfig controls whether constructed mapper factories register
// their mapper type with the session configuration.
func (s *Scanner) SetAddToConfig(v bool) { s.addToConfig = v }

// SetLazyInit marks rewritten definitions lazy, keeping them out of eager
// singleton construction.
func (s *Scanner) SetLazyInit(v bool) { s.lazyInit = v }

// SetSessionFactory binds a session factory instance into every rewritten
// definition.
func (s *Scanner) SetSessionFactory(f session.Factory) { s.sessionFactory = f }

// SetSessionTemplate binds a session template instance into every
// rewritten definition.
func (s *Scanner) SetSessionTemplate(t *session.Template) { s.sessionTemplate = t }

// SetSessionFactoryName binds the named component as the session factory,
// resolved when each mapper is constructed. Takes precedence over every
// other resource binding.
func (s *Scanner) SetSessionFactoryName(name string) { s.sessionFactoryName = name }

// SetSessionTemplateName binds the named component as the session
// template, resolved when each mapper is constructed.
func (s *Scanner) SetSessionTemplateName(name string) { s.sessionTemplateName = name }

// SetMarkerDirective restricts scanning to interfaces annotated with the
// named batis directive.
func (s *Scanner) SetMarkerDirective(name string) { s.markerDirective = name }

// SetMarkerInterface restricts scanning to interfaces that transitively
// embed the marker interface, given by fully-qualified name. The marker
// itself is never a candidate.
func (s *Scanner) SetMarkerInterface(fqn string) { s.markerInterface = fqn }

// SetFactoryType changes the factory type rewritten definitions construct
// through. Empty restores the default mapper factory.
func (s *Scanner) SetFactoryType(name string) {
	if name == "" {
		name = mapper.FactoryType()
	}
	s.factoryType = name
}

// SetDefaultScope applies a scope to discovered candidates that declared
// none of their own.
func (s *Scanner) SetDefaultScope(scope string) { s.defaultScope = scope }

// SetNameGenerator replaces the naming strategy. Nil restores the
// default.
func (s *Scanner) SetNameGenerator(g NameGenerator) {
	if g == nil {
		g = DefaultNameGenerator
	}
	s.nameGen = g
}

// AddIncludeFilter appends an inclusion filter. A candidate must match at
// least one include filter and no exclude filter.
func (s *Scanner) AddIncludeFilter(f TypeFilter) {
	s.includeFilters = append(s.includeFilters, f)
}

// AddExcludeFilter appends an exclusion filter. Exclusions win over
// inclusions.
func (s *Scanner) AddExcludeFilter(f TypeFilter) {
	s.excludeFilters = append(s.excludeFilters, f)
}

// RegisterFilters derives the filter set from the configured markers:
// a directive filter when a marker directive is set, an embeds filter when
// a marker interface is set, and a catch-all when neither narrows the
// scan. Package marker types are always excluded.
func (s *Scanner) RegisterFilters() {
	acceptAll := true
	if s.markerDirective != "" {
		s.AddIncludeFilter(ByDirective(s.markerDirective))
		acceptAll = false
	}
	if s.markerInterface != "" {
		s.AddIncludeFilter(ByEmbeds(s.markerInterface))
		acceptAll = false
	}
	if acceptAll {
		s.AddIncludeFilter(AcceptAll())
	}
	s.AddExcludeFilter(BySuffix(PackageMarkerSuffix))
}

// ── Scanning ──────────────────────────────────────────────────────────────────

// Scan discovers candidates under the roots in order, registers a
// definition per candidate and rewrites all of them to construct through
// the configured factory type. An empty outcome is a warning, not an
// error.
func (s *Scanner) Scan(roots ...string) ([]*container.Holder, error) {
	holders, err := s.doScan(roots...)
	if err != nil {
		return nil, err
	}
	if len(holders) == 0 {
		s.log.Warn("no mapper interfaces were found in the scanned packages, check your configuration",
			zap.Strings("roots", roots))
		return holders, nil
	}
	if err := s.processDefinitions(holders); err != nil {
		return nil, err
	}
	return holders, nil
}

// doScan registers a definition for every candidate type, keeping the
// interface name as the definition's type. Candidates whose generated
// name is already taken are skipped with a warning; the first registration
// wins.
func (s *Scanner) doScan(roots ...string) ([]*container.Holder, error) {
	var out []*container.Holder
	for _, root := range roots {
		metas, err := s.source.Types(root)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
		for _, m := range metas {
			if !s.isCandidate(m) {
				continue
			}
			def := container.NewDefinition(m.FQN())
			def.Scope = container.ScopeSingleton

			wantProxy := false
			if d, ok := m.Directive(scopeDirective); ok && len(d.Args) > 0 {
				def.Scope = d.Args[0]
				wantProxy = len(d.Args) > 1 && d.Args[1] == "proxy"
			}

			name := s.nameGen(m)
			if !s.checkCandidate(name, def) {
				continue
			}
			h := &container.Holder{Name: name, Definition: def}
			if wantProxy && !def.IsSingleton() {
				h = container.CreateScopedProxy(h, s.registry)
			}
			s.registry.Register(h.Name, h.Definition)
			out = append(out, h)
		}
	}
	return out, nil
}

// isCandidate applies the structural rule and the filter set: exported
// interfaces that match an include filter and no exclude filter.
func (s *Scanner) isCandidate(m *metadata.TypeMeta) bool {
	if !m.IsInterface || !m.Exported {
		return false
	}
	for _, f := range s.excludeFilters {
		if f.Match(m) {
			return false
		}
	}
	for _, f := range s.includeFilters {
		if f.Match(m) {
			return true
		}
	}
	return false
}

// checkCandidate guards insertion: a name already registered means the
// new candidate is dropped, never the existing definition.
func (s *Scanner) checkCandidate(name string, def *container.Definition) bool {
	if !s.registry.Contains(name) {
		return true
	}
	existing, _ := s.registry.Definition(name)
	existingType := ""
	if existing != nil {
		existingType = existing.TypeName
	}
	s.log.Warn("skipping mapper definition, a component with the same name is already registered",
		zap.String("name", name),
		zap.String("type", def.TypeName),
		zap.String("existingType", existingType))
	return false
}

// ── Rewriting ─────────────────────────────────────────────────────────────────

// processDefinitions turns each registered candidate into a constructible
// definition: the mapper interface moves into the first constructor
// argument, the factory type takes over construction, and the session
// resource is bound by precedence. Non-singleton results are hidden
// behind a scoped proxy.
func (s *Scanner) processDefinitions(holders []*container.Holder) error {
	warnedAboutBothResources := false

	for _, h := range holders {
		def := h.Definition
		scopedProxy := false
		if def.FactoryType == container.ScopedProxyFactoryType() {
			if def.Decorated == nil {
				return fmt.Errorf("%w: %q", ErrNoScopedTarget, h.Name)
			}
			def = def.Decorated.Definition
			scopedProxy = true
		}

		mapperInterface := def.TypeName
		s.log.Debug("creating mapper factory definition",
			zap.String("name", h.Name), zap.String("mapperInterface", mapperInterface))

		// The interface travels as the first constructor argument; the
		// definition keeps reporting the interface as its type while the
		// factory does the constructing.
		def.AddArg(mapperInterface)
		def.FactoryType = s.factoryType
		def.SetProperty("addToConfig", s.addToConfig)

		explicitFactoryUsed := false
		switch {
		case s.sessionFactoryName != "":
			def.SetProperty("sessionFactory", container.Ref{Name: s.sessionFactoryName})
			explicitFactoryUsed = true
		case s.sessionFactory != nil:
			def.SetProperty("sessionFactory", s.sessionFactory)
			explicitFactoryUsed = true
		}
		if s.sessionTemplateName != "" || s.sessionTemplate != nil {
			switch {
			case explicitFactoryUsed:
				if !warnedAboutBothResources {
					s.log.Warn("cannot use both a session template and a session factory, the template is ignored")
					warnedAboutBothResources = true
				}
			case s.sessionTemplateName != "":
				def.SetProperty("sessionTemplate", container.Ref{Name: s.sessionTemplateName})
				explicitFactoryUsed = true
			default:
				def.SetProperty("sessionTemplate", s.sessionTemplate)
				explicitFactoryUsed = true
			}
		}
		if !explicitFactoryUsed {
			s.log.Debug("enabling autowire by type for mapper definition", zap.String("name", h.Name))
			def.Autowire = container.AutowireByType
		}
		def.Lazy = s.lazyInit

		// Candidates that were wrapped at discovery time are done: their
		// scope and proxy are already in place.
		if scopedProxy {
			continue
		}
		if def.Scope == container.ScopeSingleton && s.defaultScope != "" {
			def.Scope = s.defaultScope
		}
		if !def.IsSingleton() {
			proxyHolder := container.CreateScopedProxy(&container.Holder{Name: h.Name, Definition: def}, s.registry)
			if s.registry.Contains(proxyHolder.Name) {
				s.registry.Remove(proxyHolder.Name)
			}
			s.registry.Register(proxyHolder.Name, proxyHolder.Definition)
		}
	}
	return nil
}
