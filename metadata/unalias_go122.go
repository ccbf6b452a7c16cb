//go:build go1.22

package metadata

import "go/types"

// unalias resolves alias types via types.Unalias, available since Go 1.22.
func unalias(t types.Type) types.Type { return types.Unalias(t) }
