package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/km-arc/go-batis/container"
)

// PlaceholderConfigurer rewrites string-valued definition properties and
// constructor arguments, replacing ${...} placeholders from the attached
// environment. It runs in the definition post-processing phase, before
// plain post-processors and ordered against its peers by Order.
type PlaceholderConfigurer struct {
	env   *Environment
	order int
}

// NewPlaceholderConfigurer builds a configurer over env.
func NewPlaceholderConfigurer(env *Environment) *PlaceholderConfigurer {
	return &PlaceholderConfigurer{env: env}
}

// SetOrder changes the configurer's position among property configurers.
// Lower runs earlier; the default is 0.
func (p *PlaceholderConfigurer) SetOrder(n int) { p.order = n }

// Order satisfies container.PropertyConfigurer.
func (p *PlaceholderConfigurer) Order() int { return p.order }

// ProcessDefinitions resolves placeholders in every registered definition.
func (p *PlaceholderConfigurer) ProcessDefinitions(reg *container.Registry) error {
	if p.env == nil {
		return errors.New("placeholder configurer has no environment")
	}
	for _, h := range reg.Holders() {
		def := h.Definition
		for name, v := range def.Properties {
			if s, ok := v.(string); ok && strings.Contains(s, placeholderPrefix) {
				def.Properties[name] = p.env.ResolvePlaceholders(s)
			}
		}
		for i, v := range def.Args {
			if s, ok := v.(string); ok && strings.Contains(s, placeholderPrefix) {
				def.Args[i] = p.env.ResolvePlaceholders(s)
			}
		}
	}
	return nil
}

// OverrideConfigurer pushes explicit property values into named
// definitions. Keys take the form "<definitionName>.<property>"; the split
// happens at the first dot, so generated lower-camel component names work
// while property names never contain dots.
type OverrideConfigurer struct {
	values map[string]string
	order  int

	// IgnoreInvalid skips keys that address no registered definition
	// instead of failing.
	IgnoreInvalid bool
}

// NewOverrideConfigurer builds a configurer from override keys.
func NewOverrideConfigurer(values map[string]string) *OverrideConfigurer {
	return &OverrideConfigurer{values: values}
}

// SetOrder changes the configurer's position among property configurers.
func (o *OverrideConfigurer) SetOrder(n int) { o.order = n }

// Order satisfies container.PropertyConfigurer.
func (o *OverrideConfigurer) Order() int { return o.order }

// ProcessDefinitions applies each override to its target definition.
func (o *OverrideConfigurer) ProcessDefinitions(reg *container.Registry) error {
	for key, value := range o.values {
		name, property, ok := strings.Cut(key, ".")
		if !ok || name == "" || property == "" {
			if o.IgnoreInvalid {
				continue
			}
			return fmt.Errorf("invalid override key %q: want <definition>.<property>", key)
		}
		def, found := reg.Definition(name)
		if !found {
			if o.IgnoreInvalid {
				continue
			}
			return fmt.Errorf("override key %q: no definition named %q", key, name)
		}
		def.SetProperty(property, value)
	}
	return nil
}
