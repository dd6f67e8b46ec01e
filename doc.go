// Package lvmesh tessellates parametric surfaces into triangle meshes that
// stay within a 3D chordal deflection and an angular deflection of the
// surface.
//
// What is inside?
//
//	surface/    - the Surface/Curve contracts + plane, cylinder, cone, sphere,
//	              torus, extrusion, revolution, Bezier/B-spline, callback
//	config/     - Parameters: defaults, functional options, YAML, Validate
//	rangesplit/ - adjusted (U,V) range, face basis scaling, interior nodes
//	deflection/ - error factors and conflict index cell counts per surface
//	cellfilter/ - uniform grid of boxes with lazy deletion
//	circles/    - circumcircle arena + point conflict queries
//	delaunay/   - incremental Delaunay triangulation on top of circles
//	mesher/     - per-face pipeline, refinement, parallel multi-face driver
//
// Pipeline of one face:
//
//	Surface ──► rangesplit ──► nodes ──► deflection (cells) ──► delaunay
//	                                                              │
//	                         Mesh ◄── refinement (centroids) ◄────┘
//
// Quick example:
//
//	cyl, _ := surface.NewCylinder(surface.DefaultFrame(), 1, r1.Interval{Hi: 3})
//	m, err := mesher.MeshFace(mesher.Face{Surface: cyl}, config.New(config.WithDeflection(0.01)))
//
//	go get github.com/katalvlaran/lvmesh
package lvmesh
