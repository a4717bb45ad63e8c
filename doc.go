// Package promised provides lazily produced, cached properties for Go
// structs, with dependency-driven invalidation between them.
//
// # Overview
//
// A Property is a named value attached to a host object. The first read
// runs the property's keeper and caches the result; later reads return the
// cached value until it is cleared. Properties can declare which other
// properties depend on them, on the same object or on objects reachable
// through other properties, and clearing or writing a property clears its
// dependents so that they are recomputed on their next read.
//
// A Member is the keyed counterpart: a map whose values are computed by a
// getter on first access.
//
// # Hosts
//
// Embed Object in a struct to make pointers to it usable as hosts:
//
//	type Line struct {
//		promised.Object
//	}
//
//	var length = promised.Linked("length", func(l *Line) (int, error) {
//		return measure(l), nil
//	})
//
//	n, err := length.Get(line)
//
// Properties are descriptors: declare them once, usually as package-level
// variables, and use them with every instance.
//
// # Keepers
//
// A keeper returns the value to cache. When one computation yields several
// values, give each property the same filler with WithFiller and have the
// filler Store every sibling:
//
//	func fillMaps(g *Graph) error {
//		byName, byKind := index(g)
//		nameMap.Store(g, byName)
//		kindMap.Store(g, byKind)
//		return nil
//	}
//
// # Linking
//
// New creates a plain property: Set and Delete need an explicit setter or
// deleter and do not touch dependents. Linked creates a property whose Set
// and Delete clear its dependents. Dependencies are declared three ways:
//
//	// area is cleared whenever width or height is cleared or written
//	width.Links(area)
//	height.Links(area)
//
//	// width and height follow side's current Line: clearing length on that
//	// Line clears them, and replacing side moves the edges to the new Line
//	side.Chain(length, width, height)
//
//	// clearing scale clears area on whatever Square base currently holds
//	promised.External(scale, base, area)
//
// A cascade visits each slot at most once, so cyclic declarations are
// allowed. A Set never clears the slot being written, and a property
// configured with WithoutLinkOnSet writes without clearing anything.
//
// # Observability
//
// Each Object counts hits, misses, productions and invalidations, and can
// trace them to an hclog.Logger:
//
//	sq.Configure(promised.WithLogger(logger.Named("square")))
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. An object graph is
// meant to be owned by one goroutine at a time.
package promised
