// Package surface defines the boundary between the tessellation engine and the
// geometry kernel that owns the surfaces being meshed.
//
// What:
//
//   - Surface: a parametric surface with a closed geometric Type tag, a natural
//     (U,V) definition domain, optional periodicity and 3D evaluation Point(u,v).
//   - Polynomial: degree and distinct-knot counts of Bezier/B-spline surfaces.
//   - Swept: access to the generating curve of extrusion/revolution surfaces.
//   - Curve / CurvePolynomial: the same contract for generating curves.
//
// Reference implementations are provided for every tag of the closed set:
//
//	Plane, Cylinder, Cone, Sphere, Torus   - analytic surfaces
//	Extrusion, Revolution                  - swept surfaces over a Curve
//	BSplineSurface (Bezier via NewBezierSurface)
//	FuncSurface                            - arbitrary callback, tagged Other
//
// The meshing packages never type-assert on these concrete structs; they rely
// only on the interfaces declared in types.go so that callers may plug in
// their own geometry kernel.
//
// Complexity:
//
//   - Analytic Point: O(1).
//   - B-spline Point: O(p²) per direction (de Boor), p = degree.
package surface
