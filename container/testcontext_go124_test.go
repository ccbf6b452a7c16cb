//go:build go1.24

package container_test

import (
	"context"
	"testing"
)

// testContext returns the test's context, canceled when the test ends.
func testContext(t *testing.T) context.Context { return t.Context() }
