// Package rangesplit owns the parametric window of one surface being meshed.
//
// A Splitter is bound to a surface with Reset (or New). Boundary samples are
// registered with AddPoint; AdjustRange then fits the discrete range to the
// samples within the geometric domain, derives the 2D tolerance and the
// sampling delta from the 3D extent of the window, and flags the splitter
// invalid when nothing meshable remains.
//
// Scale maps native (u,v) parameters into the face basis, where one unit
// along each axis is roughly one unit of 3D length, and back:
//
//	face = ((u - Lo_u)/ΔU, (v - Lo_v)/ΔV)
//
// GenerateSurfaceNodes yields interior seed points in native parameters. The
// generator is picked per surface.Type:
//
//	Plane, Other                         → none
//	Cylinder, Cone                       → angular grid with a damped V step
//	Sphere                               → latitude rows, U count ∝ cos v
//	Torus                                → grid from the major/minor circles
//	Bezier, BSpline, Extrusion, Revolution → knot-seeded adaptive grid
//
// The sequences are lazy and restartable: each range over them recomputes the
// grid from the current range.
//
// Calling AddPoint, AdjustRange, Scale or GenerateSurfaceNodes on an unbound
// Splitter panics with ErrUnbound.
package rangesplit
