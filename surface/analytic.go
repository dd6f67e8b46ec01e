package surface

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

// Frame is a right-handed local coordinate system used to place analytic
// surfaces in space. X, Y and Z are expected to be orthonormal.
type Frame struct {
	Origin  r3.Vector
	X, Y, Z r3.Vector
}

// DefaultFrame returns the global frame located at the origin.
func DefaultFrame() Frame {
	return Frame{
		X: r3.Vector{X: 1},
		Y: r3.Vector{Y: 1},
		Z: r3.Vector{Z: 1},
	}
}

// at maps local coordinates (x,y,z) into global space.
func (f Frame) at(x, y, z float64) r3.Vector {
	return f.Origin.Add(f.X.Mul(x)).Add(f.Y.Mul(y)).Add(f.Z.Mul(z))
}

// fullTurn is the angular domain shared by rotational surfaces.
var fullTurn = r1.Interval{Lo: 0, Hi: 2 * math.Pi}

// Plane is P(u,v) = O + u·X + v·Y over a rectangular domain.
type Plane struct {
	Frame  Frame
	URange r1.Interval
	VRange r1.Interval
}

// NewPlane returns a plane in frame f bounded by the given ranges.
func NewPlane(f Frame, u, v r1.Interval) *Plane {
	return &Plane{Frame: f, URange: u, VRange: v}
}

func (p *Plane) Type() Type                        { return TypePlane }
func (p *Plane) Domain() (u, v r1.Interval)        { return p.URange, p.VRange }
func (p *Plane) Periodicity() (uPer, vPer float64) { return 0, 0 }
func (p *Plane) Point(u, v float64) r3.Vector      { return p.Frame.at(u, v, 0) }

// Cylinder is P(u,v) = O + R·(cos u·X + sin u·Y) + v·Z.
type Cylinder struct {
	Frame  Frame
	R      float64
	URange r1.Interval
	VRange r1.Interval
}

// NewCylinder returns a full cylinder of radius r with height range v.
// Returns ErrBadRadius when r is not positive.
func NewCylinder(f Frame, r float64, v r1.Interval) (*Cylinder, error) {
	if !(r > 0) {
		return nil, ErrBadRadius
	}
	return &Cylinder{Frame: f, R: r, URange: fullTurn, VRange: v}, nil
}

func (c *Cylinder) Type() Type                        { return TypeCylinder }
func (c *Cylinder) Domain() (u, v r1.Interval)        { return c.URange, c.VRange }
func (c *Cylinder) Periodicity() (uPer, vPer float64) { return 2 * math.Pi, 0 }
func (c *Cylinder) Radius() float64                   { return c.R }

func (c *Cylinder) Point(u, v float64) r3.Vector {
	return c.Frame.at(c.R*math.Cos(u), c.R*math.Sin(u), v)
}

// Cone is P(u,v) = O + (R + v·sin a)·(cos u·X + sin u·Y) + v·cos a·Z,
// where R is the reference radius and a the semi-angle.
type Cone struct {
	Frame  Frame
	R      float64
	Angle  float64
	URange r1.Interval
	VRange r1.Interval
}

// NewCone returns a full cone. The semi-angle must lie in (-π/2, π/2) and
// the reference radius must be non-negative.
func NewCone(f Frame, refRadius, semiAngle float64, v r1.Interval) (*Cone, error) {
	if refRadius < 0 || math.Abs(semiAngle) >= math.Pi/2 {
		return nil, ErrBadRadius
	}
	return &Cone{Frame: f, R: refRadius, Angle: semiAngle, URange: fullTurn, VRange: v}, nil
}

func (c *Cone) Type() Type                        { return TypeCone }
func (c *Cone) Domain() (u, v r1.Interval)        { return c.URange, c.VRange }
func (c *Cone) Periodicity() (uPer, vPer float64) { return 2 * math.Pi, 0 }
func (c *Cone) RefRadius() float64                { return c.R }
func (c *Cone) SemiAngle() float64                { return c.Angle }

func (c *Cone) Point(u, v float64) r3.Vector {
	r := c.R + v*math.Sin(c.Angle)
	return c.Frame.at(r*math.Cos(u), r*math.Sin(u), v*math.Cos(c.Angle))
}

// Sphere is P(u,v) = O + R·cos v·(cos u·X + sin u·Y) + R·sin v·Z.
type Sphere struct {
	Frame  Frame
	R      float64
	URange r1.Interval
	VRange r1.Interval
}

// NewSphere returns a full sphere of radius r.
func NewSphere(f Frame, r float64) (*Sphere, error) {
	if !(r > 0) {
		return nil, ErrBadRadius
	}
	return &Sphere{
		Frame:  f,
		R:      r,
		URange: fullTurn,
		VRange: r1.Interval{Lo: -math.Pi / 2, Hi: math.Pi / 2},
	}, nil
}

func (s *Sphere) Type() Type                        { return TypeSphere }
func (s *Sphere) Domain() (u, v r1.Interval)        { return s.URange, s.VRange }
func (s *Sphere) Periodicity() (uPer, vPer float64) { return 2 * math.Pi, 0 }
func (s *Sphere) Radius() float64                   { return s.R }

func (s *Sphere) Point(u, v float64) r3.Vector {
	cv := math.Cos(v)
	return s.Frame.at(s.R*cv*math.Cos(u), s.R*cv*math.Sin(u), s.R*math.Sin(v))
}

// Torus is P(u,v) = O + (R1 + R2·cos v)·(cos u·X + sin u·Y) + R2·sin v·Z.
type Torus struct {
	Frame  Frame
	R1, R2 float64
	URange r1.Interval
	VRange r1.Interval
}

// NewTorus returns a full torus with major radius major and minor radius minor.
func NewTorus(f Frame, major, minor float64) (*Torus, error) {
	if !(major > 0) || !(minor > 0) {
		return nil, ErrBadRadius
	}
	return &Torus{Frame: f, R1: major, R2: minor, URange: fullTurn, VRange: fullTurn}, nil
}

func (t *Torus) Type() Type                        { return TypeTorus }
func (t *Torus) Domain() (u, v r1.Interval)        { return t.URange, t.VRange }
func (t *Torus) Periodicity() (uPer, vPer float64) { return 2 * math.Pi, 2 * math.Pi }
func (t *Torus) MajorRadius() float64              { return t.R1 }
func (t *Torus) MinorRadius() float64              { return t.R2 }

func (t *Torus) Point(u, v float64) r3.Vector {
	r := t.R1 + t.R2*math.Cos(v)
	return t.Frame.at(r*math.Cos(u), r*math.Sin(u), t.R2*math.Sin(v))
}

// FuncSurface adapts an arbitrary evaluation callback. It is always tagged
// TypeOther so the heuristics fall back to their default policy.
type FuncSurface struct {
	Eval   func(u, v float64) r3.Vector
	URange r1.Interval
	VRange r1.Interval
	UPer   float64
	VPer   float64
}

func (s *FuncSurface) Type() Type                        { return TypeOther }
func (s *FuncSurface) Domain() (u, v r1.Interval)        { return s.URange, s.VRange }
func (s *FuncSurface) Periodicity() (uPer, vPer float64) { return s.UPer, s.VPer }
func (s *FuncSurface) Point(u, v float64) r3.Vector      { return s.Eval(u, v) }
