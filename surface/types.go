package surface

import (
	"errors"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

// Sentinel errors for surface construction.
var (
	// ErrBadDegree indicates a non-positive polynomial degree.
	ErrBadDegree = errors.New("surface: degree must be >= 1")

	// ErrBadKnots indicates a knot vector that is too short or not non-decreasing.
	ErrBadKnots = errors.New("surface: invalid knot vector")

	// ErrBadPoles indicates an empty or ragged control net.
	ErrBadPoles = errors.New("surface: invalid control poles")

	// ErrBadRadius indicates a non-positive radius on an analytic surface.
	ErrBadRadius = errors.New("surface: radius must be > 0")
)

// Type is the closed set of geometric surface classes used to select
// meshing heuristics. It carries no further state.
type Type int

const (
	// TypePlane is an infinite plane bounded by its parametric domain.
	TypePlane Type = iota
	// TypeCylinder is a circular cylinder; U is angular, V is linear.
	TypeCylinder
	// TypeCone is a circular cone; U is angular, V is along the generator.
	TypeCone
	// TypeSphere is a sphere; U is longitude, V is latitude.
	TypeSphere
	// TypeTorus is a torus; U runs along the major circle, V along the minor.
	TypeTorus
	// TypeExtrusion is a linear extrusion of a basis curve; U is the curve
	// parameter, V the extrusion distance.
	TypeExtrusion
	// TypeRevolution is a basis curve revolved around an axis; U is the
	// rotation angle, V the curve parameter.
	TypeRevolution
	// TypeBezier is a Bezier surface.
	TypeBezier
	// TypeBSpline is a B-spline surface.
	TypeBSpline
	// TypeOther is any surface the heuristics do not recognise.
	TypeOther
)

// String returns a short lowercase name for t.
func (t Type) String() string {
	switch t {
	case TypePlane:
		return "plane"
	case TypeCylinder:
		return "cylinder"
	case TypeCone:
		return "cone"
	case TypeSphere:
		return "sphere"
	case TypeTorus:
		return "torus"
	case TypeExtrusion:
		return "extrusion"
	case TypeRevolution:
		return "revolution"
	case TypeBezier:
		return "bezier"
	case TypeBSpline:
		return "bspline"
	case TypeOther:
		return "other"
	}
	return "unknown"
}

// Types lists every member of the closed tag set, in declaration order.
func Types() []Type {
	return []Type{
		TypePlane, TypeCylinder, TypeCone, TypeSphere, TypeTorus,
		TypeExtrusion, TypeRevolution, TypeBezier, TypeBSpline, TypeOther,
	}
}

// CurveType classifies generating curves of swept surfaces.
type CurveType int

const (
	// CurveLine is a straight line.
	CurveLine CurveType = iota
	// CurveCircle is a circle or circular arc.
	CurveCircle
	// CurveBezier is a Bezier curve.
	CurveBezier
	// CurveBSpline is a B-spline curve.
	CurveBSpline
	// CurveOther is any other curve.
	CurveOther
)

// String returns a short lowercase name for t.
func (t CurveType) String() string {
	switch t {
	case CurveLine:
		return "line"
	case CurveCircle:
		return "circle"
	case CurveBezier:
		return "bezier"
	case CurveBSpline:
		return "bspline"
	case CurveOther:
		return "other"
	}
	return "unknown"
}

// Surface is the minimal geometric contract required by the meshing core.
//
// Domain returns the natural (U,V) definition domain. Periodicity returns the
// period along each direction, or 0 when the direction is not periodic.
// Point evaluates the surface in 3D and must be safe for concurrent use.
type Surface interface {
	Type() Type
	Domain() (u, v r1.Interval)
	Periodicity() (uPeriod, vPeriod float64)
	Point(u, v float64) r3.Vector
}

// Polynomial is implemented by Bezier and B-spline surfaces.
// KnotCount reports the number of distinct knots per direction.
type Polynomial interface {
	Degree() (u, v int)
	KnotCount() (u, v int)
}

// Swept is implemented by extrusion and revolution surfaces.
type Swept interface {
	BasisCurve() Curve
}

// Curve is a 3D parametric curve.
type Curve interface {
	Type() CurveType
	Domain() r1.Interval
	Point(t float64) r3.Vector
}

// CurvePolynomial is implemented by Bezier and B-spline curves.
type CurvePolynomial interface {
	Degree() int
	KnotCount() int
}

// Radial is implemented by surfaces with a single characteristic radius
// (cylinder, sphere).
type Radial interface {
	Radius() float64
}

// Conical is implemented by cones.
type Conical interface {
	RefRadius() float64
	SemiAngle() float64
}

// Toroidal is implemented by tori.
type Toroidal interface {
	MajorRadius() float64
	MinorRadius() float64
}
