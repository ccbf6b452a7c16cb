//go:build !go1.22

package metadata

import "go/types"

// unalias stands in for types.Unalias, which was added in Go 1.22. The
// Go 1.21 type checker never materializes alias types, so the identity
// is exact there.
func unalias(t types.Type) types.Type { return t }
