// Package mapper provides the factory side of mapper scanning: a provider
// registry binding mapper interfaces to their session-backed
// implementations, the Factory component the container constructs mappers
// through, and the embeddable SessionSupport resource holder.
package mapper

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/km-arc/go-batis/session"
)

// Provider builds a mapper implementation bound to a session.
type Provider func(s session.Session) any

var providersMu sync.RWMutex
var providers = make(map[string]Provider)

// Register binds a constructor for the mapper interface T. Like factory
// type registration it is meant for init functions, and registering the
// same interface twice panics:
//
//	func init() {
//	    mapper.Register[UserMapper](func(s session.Session) UserMapper {
//	        return &userMapper{s: s}
//	    })
//	}
func Register[T any](build func(s session.Session) T) {
	if build == nil {
		panic("mapper: Register called with nil constructor")
	}
	fqn := TypeName[T]()
	providersMu.Lock()
	defer providersMu.Unlock()
	if _, dup := providers[fqn]; dup {
		panic(fmt.Sprintf("mapper: Register called twice for %s", fqn))
	}
	providers[fqn] = func(s session.Session) any { return build(s) }
}

// TypeName returns the fully-qualified name of T, matching the names the
// scanner writes into definitions.
func TypeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Registered returns the mapper types with providers, sorted.
func Registered() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()
	out := make([]string, 0, len(providers))
	for fqn := range providers {
		out = append(out, fqn)
	}
	sort.Strings(out)
	return out
}

func providerFor(fqn string) (Provider, bool) {
	providersMu.RLock()
	defer providersMu.RUnlock()
	p, ok := providers[fqn]
	return p, ok
}
