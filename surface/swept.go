package surface

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

// Line is C(t) = Origin + t·Dir over Range.
type Line struct {
	Origin r3.Vector
	Dir    r3.Vector
	Range  r1.Interval
}

func (l *Line) Type() CurveType           { return CurveLine }
func (l *Line) Domain() r1.Interval       { return l.Range }
func (l *Line) Point(t float64) r3.Vector { return l.Origin.Add(l.Dir.Mul(t)) }

// CircleCurve is a circle of radius R in the XY plane of Frame,
// parameterised by angle.
type CircleCurve struct {
	Frame Frame
	R     float64
	Range r1.Interval
}

func (c *CircleCurve) Type() CurveType     { return CurveCircle }
func (c *CircleCurve) Domain() r1.Interval { return c.Range }

func (c *CircleCurve) Point(t float64) r3.Vector {
	return c.Frame.at(c.R*math.Cos(t), c.R*math.Sin(t), 0)
}

// Extrusion sweeps Curve along Dir: P(u,v) = C(u) + v·Dir.
type Extrusion struct {
	Curve  Curve
	Dir    r3.Vector
	VRange r1.Interval
}

// NewExtrusion returns the extrusion of c along dir over the distance range v.
// The direction is normalised.
func NewExtrusion(c Curve, dir r3.Vector, v r1.Interval) *Extrusion {
	return &Extrusion{Curve: c, Dir: dir.Normalize(), VRange: v}
}

func (e *Extrusion) Type() Type                 { return TypeExtrusion }
func (e *Extrusion) Domain() (u, v r1.Interval) { return e.Curve.Domain(), e.VRange }
func (e *Extrusion) BasisCurve() Curve          { return e.Curve }

func (e *Extrusion) Periodicity() (uPer, vPer float64) {
	if e.Curve.Type() == CurveCircle {
		return 2 * math.Pi, 0
	}
	return 0, 0
}

func (e *Extrusion) Point(u, v float64) r3.Vector {
	return e.Curve.Point(u).Add(e.Dir.Mul(v))
}

// Revolution revolves Curve around the axis through Origin along Axis:
// U is the rotation angle in [0, 2π), V the curve parameter.
type Revolution struct {
	Curve  Curve
	Origin r3.Vector
	Axis   r3.Vector
}

// NewRevolution returns the revolution of c around the given axis.
// The axis direction is normalised.
func NewRevolution(c Curve, origin, axis r3.Vector) *Revolution {
	return &Revolution{Curve: c, Origin: origin, Axis: axis.Normalize()}
}

func (r *Revolution) Type() Type                        { return TypeRevolution }
func (r *Revolution) Domain() (u, v r1.Interval)        { return fullTurn, r.Curve.Domain() }
func (r *Revolution) Periodicity() (uPer, vPer float64) { return 2 * math.Pi, 0 }
func (r *Revolution) BasisCurve() Curve                 { return r.Curve }

// Point rotates C(v) by angle u using Rodrigues' formula.
func (r *Revolution) Point(u, v float64) r3.Vector {
	p := r.Curve.Point(v).Sub(r.Origin)
	k := r.Axis
	cu, su := math.Cos(u), math.Sin(u)
	rot := p.Mul(cu).Add(k.Cross(p).Mul(su)).Add(k.Mul(k.Dot(p) * (1 - cu)))
	return rot.Add(r.Origin)
}
