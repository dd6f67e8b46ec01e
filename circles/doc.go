// Package circles stores the circumcircles of the triangles built during
// incremental triangulation and answers which of them contain a query point.
//
// Storage is an arena of slots addressed by index. Every Bind or Add bumps the
// slot generation and returns a Handle{Index, Gen}; the spatial index stores
// handles, so an entry left behind by a previous occupant of a reused slot is
// recognised as stale and purged the next time a query touches it. Delete
// marks the circle purged (negative radius) and pushes the slot onto a free
// list consumed by Add.
//
// Conflict rule:
//
//	A circle with center c and radius r is shot by point p when
//	    |p-c|² - r² ≤ tol²
//	This is an approximation of |p-c| ≤ r + tol that accepts a narrower band
//	for large radii. It is kept as is: the exact rule was observed to stall
//	insertion on some inputs.
//
// Tool couples a Registry with a cellfilter.Filter[Handle] 1:1: every bound
// circle is indexed by the box of its conflict band, radius sqrt(r² + tol²),
// clamped to the face min/max. A circle edited through Registry().Circle is
// re-indexed by Tool.Update.
package circles
