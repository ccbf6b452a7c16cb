// Package scan implements mapper scanning: discovering mapper interfaces
// under Go package roots and rewriting the container's definitions so
// each interface is constructed through a session-bound factory.
//
// # Overview
//
// Mappers are plain exported interfaces. An application declares where
// they live; scanning finds them, names them, registers a definition per
// interface and rewrites every definition before anything is constructed.
// Resolving a mapper then yields a live implementation bound to the
// shared session resource, without the application ever constructing it.
//
// # Pipeline
//
//  1. Placeholder pre-resolution (optional): the configurer's own string
//     fields are resolved against the property configurers and the
//     environment, ahead of their usual phase.
//  2. Discovery: every exported interface under the roots that passes the
//     filter set becomes a candidate. Name collisions are skipped with a
//     warning; the first registration wins.
//  3. Rewrite: each candidate definition gets the interface name as its
//     first constructor argument, the mapper factory as its factory type,
//     and a session resource binding by precedence. An explicit factory
//     always beats an explicit template; having both logs one warning per
//     pass. With no explicit binding the definition autowires by type.
//  4. Scope adjustment: non-singleton results are hidden behind a scoped
//     proxy, two registry entries per mapper.
//
// # Entry points
//
// Programmatic, through the post-processor interface:
//
//	cfgr := scan.NewConfigurer()
//	cfgr.BasePackages = "example.com/app/mappers"
//	cfgr.SessionFactoryName = "sessionFactory"
//	c.AddRegistryPostProcessor(cfgr)
//
// Declarative, through the registrar:
//
//	r := scan.Registrar{Host: App{}}
//	r.Register(c.Definitions(), scan.Scan{MarkerDirective: "mapper"})
//
// Direct, for callers that manage their own lifecycle:
//
//	sc := scan.NewScanner(c.Definitions(), &metadata.Loader{})
//	sc.SetSessionFactoryName("sessionFactory")
//	sc.RegisterFilters()
//	holders, err := sc.Scan("example.com/app/mappers")
//
// # Narrowing the scan
//
// By default every exported interface under the roots is a mapper. A
// marker directive restricts to annotated interfaces:
//
//	//batis:mapper
//	type UserMapper interface { ... }
//
// A marker interface restricts to interfaces that embed it, however
// deeply; the marker itself is never a candidate. Types following the
// PackageMarker naming convention are always excluded.
package scan
