//go:build !go1.24

package scan_test

import (
	"context"
	"testing"
)

// testContext stands in for testing.T.Context, which was added in Go 1.24.
func testContext(t *testing.T) context.Context { return context.Background() }
