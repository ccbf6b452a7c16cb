// Package session defines the shared persistence resource that scanned
// mappers execute against: the Session operation contract, the Factory
// that opens sessions, a thread-safe Template implementation and a
// programmatic builder. Statement parsing and transaction demarcation are
// out of scope; the Opener hook supplies the live backend.
package session

import "context"

// Session executes mapped statements. Implementations are not required to
// be safe for concurrent use; Template is the concurrency-safe wrapper
// handed to mappers.
type Session interface {
	// SelectOne executes a query expected to return at most one row.
	SelectOne(ctx context.Context, statement string, param any) (any, error)
	// SelectList executes a query returning any number of rows.
	SelectList(ctx context.Context, statement string, param any) ([]any, error)
	// Execute runs a statement that modifies data and returns the number
	// of affected rows.
	Execute(ctx context.Context, statement string, param any) (int64, error)
	// Close releases the session.
	Close() error
}

// Factory opens sessions and owns the shared configuration.
type Factory interface {
	OpenSession(ctx context.Context) (Session, error)
	Config() *Config
}
