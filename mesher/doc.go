// Package mesher turns a parametric face into a triangle mesh whose facets
// stay within a 3D deflection of the surface.
//
// MeshFace drives one face through the pipeline:
//
//	rangesplit.Splitter   adjusted (U,V) range and face basis
//	deflection            cell counts for the conflict index
//	delaunay              incremental triangulation in the face basis
//	refinement            centroid insertion until facets meet the tolerances
//
// MeshFaces meshes many faces, concurrently when Parameters.InParallel is set.
// Each face gets its own splitter, triangulation and circle tool; the only
// state shared between goroutines is the read-only Parameters and the
// package logger.
//
// Logging is silent by default; see SetLogger.
package mesher
