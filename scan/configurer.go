package scan

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/km-arc/go-batis/container"
	"github.com/km-arc/go-batis/metadata"
	"github.com/km-arc/go-batis/session"
)

// Configurer is the registry post-processor entry point for mapper
// scanning: register one (programmatically or as a definition), set
// BasePackages, and every mapper interface under the roots becomes a
// constructible definition during bootstrap.
//
//	cfgr := scan.NewConfigurer()
//	cfgr.BasePackages = "example.com/app/mappers"
//	cfgr.SessionFactoryName = "sessionFactory"
//	c.AddRegistryPostProcessor(cfgr)
//
// Fields mirror the scanner's setters; LazyInit is string-encoded so a
// placeholder can decide it.
type Configurer struct {
	// BasePackages lists the package roots, delimited by commas,
	// semicolons or whitespace. Required.
	BasePackages string

	// AddToConfig controls mapper registration with the session
	// configuration. Defaults to true.
	AddToConfig bool

	// LazyInit is a string-encoded bool ("true" marks scanned definitions
	// lazy). Unparseable values fall back to false.
	LazyInit string

	// Session resource bindings, strongest first: a named factory, a
	// factory instance, a named template, a template instance. Leaving
	// all four empty turns on autowiring by type.
	SessionFactoryName  string
	SessionFactory      session.Factory
	SessionTemplateName string
	SessionTemplate     *session.Template

	// MarkerDirective and MarkerInterface narrow the scan; see the
	// scanner's setters.
	MarkerDirective string
	MarkerInterface string

	// FactoryType overrides the factory type definitions are rewritten
	// to. Empty means the mapper package's default.
	FactoryType string

	// NameGenerator overrides the naming strategy.
	NameGenerator NameGenerator

	// DefaultScope applies to candidates that declared no scope of their
	// own.
	DefaultScope string

	// ProcessPlaceholders resolves ${...} placeholders in this
	// configurer's own string fields before scanning. Needed because
	// registry post-processing runs before the placeholder configurers'
	// own phase.
	ProcessPlaceholders bool

	// Source supplies type facts. Nil means the go/packages loader.
	Source metadata.Source

	name      string
	container *container.Container
	log       *zap.Logger
}

// NewConfigurer returns a configurer with the defaults.
func NewConfigurer() *Configurer {
	return &Configurer{AddToConfig: true, log: zap.NewNop()}
}

// ConfigurerFactoryType returns the registered factory type name for
// definition-declared configurers.
func ConfigurerFactoryType() string { return container.TypeKey(&Configurer{}) }

func init() {
	container.RegisterFactory(ConfigurerFactoryType(), func(args ...any) (any, error) {
		return NewConfigurer(), nil
	})
}

// SetLogger replaces the configurer's logger.
func (c *Configurer) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l
}

// SetComponentName records the name this configurer is registered under.
// The placeholder pre-resolution pass needs it to find its own
// definition.
func (c *Configurer) SetComponentName(name string) { c.name = name }

// SetContainer records the constructing container.
func (c *Configurer) SetContainer(cc *container.Container) { c.container = cc }

// ProcessRegistry validates the configuration, optionally pre-resolves
// placeholders in it, and runs the scan against the given registry.
func (c *Configurer) ProcessRegistry(reg *container.Registry) error {
	if c.ProcessPlaceholders {
		if err := c.processPlaceholders(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.BasePackages) == "" {
		return ErrNoBasePackages
	}

	src := c.Source
	if src == nil {
		src = &metadata.Loader{}
	}
	sc := NewScanner(reg, src)
	sc.SetLogger(c.log)
	sc.SetAddToConfig(c.AddToConfig)
	lazy, err := strconv.ParseBool(c.LazyInit)
	if err != nil {
		// Mirrors lenient env-style parsing: anything unparseable,
		// including empty, means eager.
		lazy = false
	}
	sc.SetLazyInit(lazy)
	sc.SetSessionFactory(c.SessionFactory)
	sc.SetSessionTemplate(c.SessionTemplate)
	sc.SetSessionFactoryName(c.SessionFactoryName)
	sc.SetSessionTemplateName(c.SessionTemplateName)
	sc.SetMarkerDirective(c.MarkerDirective)
	sc.SetMarkerInterface(c.MarkerInterface)
	sc.SetFactoryType(c.FactoryType)
	sc.SetDefaultScope(c.DefaultScope)
	sc.SetNameGenerator(c.NameGenerator)
	sc.RegisterFilters()

	_, err = sc.Scan(tokenizePackages(c.BasePackages)...)
	return err
}

// processPlaceholders resolves placeholders in the five string fields a
// placeholder might configure. Property configurers run in a later phase
// than registry post-processors, so they are applied here against an
// ephemeral registry containing only this configurer's own definition,
// then the environment takes an independent pass. Both avenues are
// skipped silently when their collaborator is absent.
func (c *Configurer) processPlaceholders() error {
	if c.container == nil {
		return nil
	}

	if c.name != "" {
		if def, ok := c.container.Definitions().Definition(c.name); ok {
			configurers, err := container.ComponentsOf[container.PropertyConfigurer](c.container)
			if err != nil {
				return err
			}
			if len(configurers) > 0 {
				names := make([]string, 0, len(configurers))
				for n := range configurers {
					names = append(names, n)
				}
				sort.Slice(names, func(i, j int) bool {
					a, b := configurers[names[i]], configurers[names[j]]
					if a.Order() != b.Order() {
						return a.Order() < b.Order()
					}
					return names[i] < names[j]
				})

				ephemeral := container.NewRegistry()
				ephemeral.Register(c.name, def)
				for _, n := range names {
					if err := configurers[n].ProcessDefinitions(ephemeral); err != nil {
						return err
					}
				}

				c.BasePackages = stringProperty(def, "basePackages", c.BasePackages)
				c.SessionFactoryName = stringProperty(def, "sessionFactoryName", c.SessionFactoryName)
				c.SessionTemplateName = stringProperty(def, "sessionTemplateName", c.SessionTemplateName)
				c.LazyInit = stringProperty(def, "lazyInit", c.LazyInit)
				c.DefaultScope = stringProperty(def, "defaultScope", c.DefaultScope)
			}
		}
	}

	if env := c.container.Environment(); env != nil {
		c.BasePackages = env.ResolvePlaceholders(c.BasePackages)
		c.SessionFactoryName = env.ResolvePlaceholders(c.SessionFactoryName)
		c.SessionTemplateName = env.ResolvePlaceholders(c.SessionTemplateName)
		c.LazyInit = env.ResolvePlaceholders(c.LazyInit)
		c.DefaultScope = env.ResolvePlaceholders(c.DefaultScope)
	}
	return nil
}

func stringProperty(def *container.Definition, name, current string) string {
	v, ok := def.Property(name)
	if !ok {
		return current
	}
	s, ok := v.(string)
	if !ok {
		return current
	}
	return s
}

// tokenizePackages splits a root list on commas, semicolons and
// whitespace.
func tokenizePackages(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
}
