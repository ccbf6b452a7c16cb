// Package fixture declares the mapper interfaces the scan tests discover
// through the real loader.
package fixture

import "context"

// UserMapper is the straightforward candidate: a directive, no scope.
//
//batis:mapper
type UserMapper interface {
	FindUser(ctx context.Context, id string) (any, error)
}

// AuditMapper lives in the request scope behind a proxy.
//
//batis:mapper
//batis:scope request proxy
type AuditMapper interface {
	Record(ctx context.Context, event string) error
}

// Helper carries no directive; narrowed scans skip it.
type Helper interface {
	Help() string
}

// FixturePackageMarker anchors the package. The suffix keeps it out of
// every scan, directive or not.
//
//batis:mapper
type FixturePackageMarker interface{}
