// Package fixture holds type declarations the loader tests inspect.
package fixture

import "context"

// Tagged carries directives.
//
//batis:mapper
//batis:scope request proxy
type Tagged interface {
	Fetch(ctx context.Context, id string) (any, error)
}

// Marker is embedded, directly or transitively, by marked interfaces.
type Marker interface{}

// Inner embeds Marker directly.
type Inner interface {
	Marker
}

// Deep embeds Marker only through Inner.
type Deep interface {
	Inner
	Close() error
}

// Failer embeds the universe error interface.
type Failer interface {
	error
}

// Plain has no embeds and no directives.
type Plain interface {
	Do() error
}

// Record is a struct, not an interface.
type Record struct {
	ID string
}

type hidden interface{ secret() }
