package circles

import (
	"math"

	"github.com/golang/geo/r2"
)

// Circle is a circumcircle record. A negative Radius marks it purged.
type Circle struct {
	Center r2.Point
	Radius float64
}

// Purged reports whether the circle has been logically removed.
func (c Circle) Purged() bool { return c.Radius < 0 }

// Bound returns the axis-aligned box of the disk.
func (c Circle) Bound() r2.Rect {
	return r2.RectFromCenterSize(c.Center, r2.Point{X: 2 * c.Radius, Y: 2 * c.Radius})
}

// Handle is a generation-stamped reference to a registry slot.
type Handle struct {
	Index int
	Gen   uint32
}

// collinearEps bounds the cross product below which three points are
// treated as collinear, relative to the squared edge lengths.
const collinearEps = 1e-12

// MakeCircle returns the circle through p1, p2 and p3. It reports false for
// coincident or collinear points.
func MakeCircle(p1, p2, p3 r2.Point) (Circle, bool) {
	a := p2.Sub(p1)
	b := p3.Sub(p1)
	d := 2 * a.Cross(b)

	scale := math.Max(a.Dot(a), b.Dot(b))
	if scale == 0 || math.Abs(d) <= collinearEps*scale {
		return Circle{}, false
	}

	aa, bb := a.Dot(a), b.Dot(b)
	off := r2.Point{
		X: (b.Y*aa - a.Y*bb) / d,
		Y: (a.X*bb - b.X*aa) / d,
	}
	return Circle{Center: p1.Add(off), Radius: off.Norm()}, true
}
