package session

import (
	"fmt"
	"sort"
	"sync"
)

// Config is the shared configuration of a session factory. Today its job
// is mapper bookkeeping: which mapper types the factory knows about.
// Registration is idempotent-checked, not idempotent: adding a known
// mapper is an error, so callers check HasMapper first when re-runs are
// possible.
type Config struct {
	mu      sync.RWMutex
	mappers map[string]bool
}

// NewConfig returns an empty configuration.
func NewConfig() *Config {
	return &Config{mappers: make(map[string]bool)}
}

// AddMapper registers a mapper type by fully-qualified name.
func (c *Config) AddMapper(fqn string) error {
	if fqn == "" {
		return fmt.Errorf("mapper type name is empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mappers[fqn] {
		return fmt.Errorf("mapper %s is already registered", fqn)
	}
	c.mappers[fqn] = true
	return nil
}

// HasMapper reports whether the mapper type is registered.
func (c *Config) HasMapper(fqn string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mappers[fqn]
}

// Mappers returns the registered mapper type names, sorted.
func (c *Config) Mappers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.mappers))
	for fqn := range c.mappers {
		out = append(out, fqn)
	}
	sort.Strings(out)
	return out
}
