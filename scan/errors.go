package scan

import "errors"

var (
	// ErrNoBasePackages is returned when a configurer runs without any
	// package roots. Scanning nothing is always a configuration mistake,
	// so it fails before the scan starts.
	ErrNoBasePackages = errors.New("the basePackages property is required")

	// ErrNoScopedTarget is returned when a scoped proxy definition turns
	// up without its decorated target during rewriting.
	ErrNoScopedTarget = errors.New("scoped proxy definition has no decorated target")

	// ErrNoHost is returned when a Registrar has no host anchor to derive
	// names and fallback roots from.
	ErrNoHost = errors.New("registrar requires a host anchor")
)
