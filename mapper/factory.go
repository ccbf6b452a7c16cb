package mapper

import (
	"errors"
	"fmt"

	"github.com/km-arc/go-batis/container"
)

// ErrNoProvider is returned when a mapper is resolved before a provider
// for its interface was registered.
var ErrNoProvider = errors.New("no provider registered for mapper type")

// Factory is the factory component behind every scanned mapper
// definition: an ObjectFactory producing the implementation of one mapper
// interface, bound to the session resource carried by the embedded
// SessionSupport. The scanner rewrites each discovered interface
// definition to construct through it, passing the interface name as the
// first constructor argument.
type Factory struct {
	SessionSupport

	// MapperType is the fully-qualified interface this factory produces.
	MapperType string
	// AddToConfig registers the mapper type with the session
	// configuration during Init. Defaults to true.
	AddToConfig bool
}

// NewFactory is the registered constructor. The optional first argument is
// the mapper interface name.
func NewFactory(args ...any) (any, error) {
	f := &Factory{AddToConfig: true}
	if len(args) > 0 {
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("mapper factory argument must be a type name, got %T", args[0])
		}
		f.MapperType = s
	}
	return f, nil
}

// FactoryType returns the registered factory type name, the default the
// scanner rewrites definitions to.
func FactoryType() string { return container.TypeKey(&Factory{}) }

func init() {
	container.RegisterFactory(FactoryType(), NewFactory)
}

// Init validates the factory and, when AddToConfig is set, registers the
// mapper type with the session configuration unless it is already known.
func (f *Factory) Init() error {
	if f.MapperType == "" {
		return errors.New("a mapper type is required")
	}
	if _, err := f.Session(); err != nil {
		return err
	}
	if !f.AddToConfig {
		return nil
	}
	cfg, err := f.SessionConfig()
	if err != nil {
		return err
	}
	if cfg.HasMapper(f.MapperType) {
		return nil
	}
	if err := cfg.AddMapper(f.MapperType); err != nil {
		return fmt.Errorf("adding mapper %s to configuration: %w", f.MapperType, err)
	}
	return nil
}

// Object builds the mapper implementation through the registered provider.
func (f *Factory) Object() (any, error) {
	s, err := f.Session()
	if err != nil {
		return nil, err
	}
	p, ok := providerFor(f.MapperType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoProvider, f.MapperType)
	}
	return p(s), nil
}

// ObjectType reports the mapper interface this factory produces.
func (f *Factory) ObjectType() string { return f.MapperType }
