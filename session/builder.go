package session

import (
	"context"
	"errors"
	"fmt"
)

// Opener produces a live session for each operation. It is the pluggable
// backend of a built factory; tests and examples supply in-memory openers,
// real deployments wrap their driver here.
type Opener func(ctx context.Context, cfg *Config) (Session, error)

// FactoryBuilder assembles a Factory programmatically. An opener is
// required; configuration and pre-registered mappers are optional.
//
//	sf, err := session.NewFactoryBuilder().
//	    WithOpener(openSQL).
//	    AddMappers("example.com/app.UserMapper").
//	    Build()
type FactoryBuilder struct {
	config  *Config
	opener  Opener
	mappers []string
}

// NewFactoryBuilder returns an empty builder.
func NewFactoryBuilder() *FactoryBuilder {
	return &FactoryBuilder{}
}

// WithOpener sets the session backend.
func (b *FactoryBuilder) WithOpener(o Opener) *FactoryBuilder {
	b.opener = o
	return b
}

// WithConfig supplies a configuration to build on instead of a fresh one.
func (b *FactoryBuilder) WithConfig(c *Config) *FactoryBuilder {
	b.config = c
	return b
}

// AddMappers pre-registers mapper types with the configuration.
func (b *FactoryBuilder) AddMappers(fqns ...string) *FactoryBuilder {
	b.mappers = append(b.mappers, fqns...)
	return b
}

// Build validates the builder and returns the factory.
func (b *FactoryBuilder) Build() (Factory, error) {
	if b.opener == nil {
		return nil, errors.New("an opener is required")
	}
	cfg := b.config
	if cfg == nil {
		cfg = NewConfig()
	}
	for _, fqn := range b.mappers {
		if cfg.HasMapper(fqn) {
			continue
		}
		if err := cfg.AddMapper(fqn); err != nil {
			return nil, fmt.Errorf("registering mapper: %w", err)
		}
	}
	return &builtFactory{config: cfg, opener: b.opener}, nil
}

type builtFactory struct {
	config *Config
	opener Opener
}

func (f *builtFactory) OpenSession(ctx context.Context) (Session, error) {
	return f.opener(ctx, f.config)
}

func (f *builtFactory) Config() *Config { return f.config }
