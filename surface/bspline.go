package surface

import (
	"math"
	"sort"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

// validateKnots checks a flat (multiplicity-expanded) knot vector against the
// degree and pole count: len(knots) == poles + degree + 1, non-decreasing.
func validateKnots(knots []float64, degree, poles int) error {
	if degree < 1 {
		return ErrBadDegree
	}
	if poles < degree+1 || len(knots) != poles+degree+1 {
		return ErrBadKnots
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] || math.IsNaN(knots[i]) {
			return ErrBadKnots
		}
	}
	if !(knots[poles] > knots[degree]) {
		return ErrBadKnots
	}
	return nil
}

// clampedKnots returns the Bezier knot vector [0…0, 1…1] for the degree.
func clampedKnots(degree int) []float64 {
	k := make([]float64, 2*(degree+1))
	for i := degree + 1; i < len(k); i++ {
		k[i] = 1
	}
	return k
}

// distinctKnots counts the distinct knot values inside the active span.
func distinctKnots(knots []float64, degree, poles int) int {
	n := 0
	last := math.NaN()
	for i := degree; i <= poles; i++ {
		if knots[i] != last {
			n++
			last = knots[i]
		}
	}
	return n
}

// uniqueKnots returns the distinct knot values of the active span, ascending.
func uniqueKnots(knots []float64, degree, poles int) []float64 {
	out := make([]float64, 0, poles-degree+1)
	for i := degree; i <= poles; i++ {
		if len(out) == 0 || knots[i] != out[len(out)-1] {
			out = append(out, knots[i])
		}
	}
	return out
}

// findSpan returns the knot span index k with knots[k] <= t < knots[k+1],
// clamped to the last non-empty span at the upper end.
func findSpan(knots []float64, degree, poles int, t float64) int {
	if t >= knots[poles] {
		k := poles - 1
		for k > degree && knots[k] == knots[k+1] {
			k--
		}
		return k
	}
	if t <= knots[degree] {
		return degree
	}
	// knots[degree..poles] is sorted; find the last knot <= t.
	i := sort.Search(poles-degree+1, func(i int) bool { return knots[degree+i] > t })
	return degree + i - 1
}

// deBoor evaluates at t on span k. d must hold the degree+1 poles
// poles[k-degree..k]; it is overwritten.
func deBoor(knots []float64, degree, k int, t float64, d []r3.Vector) r3.Vector {
	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			i := k - degree + j
			den := knots[i+degree-r+1] - knots[i]
			alpha := 0.0
			if den != 0 {
				alpha = (t - knots[i]) / den
			}
			d[j] = d[j-1].Mul(1 - alpha).Add(d[j].Mul(alpha))
		}
	}
	return d[degree]
}

// BSplineCurve is a non-rational B-spline curve with a flat knot vector.
type BSplineCurve struct {
	Deg    int
	Poles  []r3.Vector
	Knots  []float64
	bezier bool
}

// NewBSplineCurve validates and returns a B-spline curve.
func NewBSplineCurve(degree int, poles []r3.Vector, knots []float64) (*BSplineCurve, error) {
	if err := validateKnots(knots, degree, len(poles)); err != nil {
		return nil, err
	}
	return &BSplineCurve{
		Deg:   degree,
		Poles: append([]r3.Vector(nil), poles...),
		Knots: append([]float64(nil), knots...),
	}, nil
}

// NewBezierCurve returns the Bezier curve of degree len(poles)-1 on [0,1].
func NewBezierCurve(poles []r3.Vector) (*BSplineCurve, error) {
	if len(poles) < 2 {
		return nil, ErrBadPoles
	}
	c, err := NewBSplineCurve(len(poles)-1, poles, clampedKnots(len(poles)-1))
	if err != nil {
		return nil, err
	}
	c.bezier = true
	return c, nil
}

func (c *BSplineCurve) Type() CurveType {
	if c.bezier {
		return CurveBezier
	}
	return CurveBSpline
}

func (c *BSplineCurve) Domain() r1.Interval {
	return r1.Interval{Lo: c.Knots[c.Deg], Hi: c.Knots[len(c.Poles)]}
}

func (c *BSplineCurve) Degree() int    { return c.Deg }
func (c *BSplineCurve) KnotCount() int { return distinctKnots(c.Knots, c.Deg, len(c.Poles)) }

// UniqueKnots returns the distinct knots of the curve's active span.
func (c *BSplineCurve) UniqueKnots() []float64 {
	return uniqueKnots(c.Knots, c.Deg, len(c.Poles))
}

func (c *BSplineCurve) Point(t float64) r3.Vector {
	k := findSpan(c.Knots, c.Deg, len(c.Poles), t)
	d := make([]r3.Vector, c.Deg+1)
	copy(d, c.Poles[k-c.Deg:k+1])
	return deBoor(c.Knots, c.Deg, k, t, d)
}

// BSplineSurface is a non-rational tensor-product B-spline surface.
// Poles[i][j] is indexed by U row i and V column j.
type BSplineSurface struct {
	UDeg, VDeg     int
	Poles          [][]r3.Vector
	UKnots, VKnots []float64
	bezier         bool
}

// NewBSplineSurface validates and returns a B-spline surface.
func NewBSplineSurface(uDeg, vDeg int, poles [][]r3.Vector, uKnots, vKnots []float64) (*BSplineSurface, error) {
	if len(poles) == 0 || len(poles[0]) == 0 {
		return nil, ErrBadPoles
	}
	nv := len(poles[0])
	for _, row := range poles {
		if len(row) != nv {
			return nil, ErrBadPoles
		}
	}
	if err := validateKnots(uKnots, uDeg, len(poles)); err != nil {
		return nil, err
	}
	if err := validateKnots(vKnots, vDeg, nv); err != nil {
		return nil, err
	}
	cp := make([][]r3.Vector, len(poles))
	for i := range poles {
		cp[i] = append([]r3.Vector(nil), poles[i]...)
	}
	return &BSplineSurface{
		UDeg:   uDeg,
		VDeg:   vDeg,
		Poles:  cp,
		UKnots: append([]float64(nil), uKnots...),
		VKnots: append([]float64(nil), vKnots...),
	}, nil
}

// NewBezierSurface returns the Bezier surface defined by the control net,
// with degrees len(poles)-1 and len(poles[0])-1 on [0,1]².
func NewBezierSurface(poles [][]r3.Vector) (*BSplineSurface, error) {
	if len(poles) < 2 || len(poles[0]) < 2 {
		return nil, ErrBadPoles
	}
	uDeg, vDeg := len(poles)-1, len(poles[0])-1
	s, err := NewBSplineSurface(uDeg, vDeg, poles, clampedKnots(uDeg), clampedKnots(vDeg))
	if err != nil {
		return nil, err
	}
	s.bezier = true
	return s, nil
}

func (s *BSplineSurface) Type() Type {
	if s.bezier {
		return TypeBezier
	}
	return TypeBSpline
}

func (s *BSplineSurface) Domain() (u, v r1.Interval) {
	nu, nv := len(s.Poles), len(s.Poles[0])
	return r1.Interval{Lo: s.UKnots[s.UDeg], Hi: s.UKnots[nu]},
		r1.Interval{Lo: s.VKnots[s.VDeg], Hi: s.VKnots[nv]}
}

func (s *BSplineSurface) Periodicity() (uPer, vPer float64) { return 0, 0 }
func (s *BSplineSurface) Degree() (u, v int)                { return s.UDeg, s.VDeg }

func (s *BSplineSurface) KnotCount() (u, v int) {
	return distinctKnots(s.UKnots, s.UDeg, len(s.Poles)),
		distinctKnots(s.VKnots, s.VDeg, len(s.Poles[0]))
}

// UniqueKnots returns the distinct knots of both directions.
func (s *BSplineSurface) UniqueKnots() (u, v []float64) {
	return uniqueKnots(s.UKnots, s.UDeg, len(s.Poles)),
		uniqueKnots(s.VKnots, s.VDeg, len(s.Poles[0]))
}

func (s *BSplineSurface) Point(u, v float64) r3.Vector {
	nu, nv := len(s.Poles), len(s.Poles[0])
	ku := findSpan(s.UKnots, s.UDeg, nu, u)
	kv := findSpan(s.VKnots, s.VDeg, nv, v)

	col := make([]r3.Vector, s.UDeg+1)
	row := make([]r3.Vector, s.VDeg+1)
	for i := 0; i <= s.UDeg; i++ {
		copy(row, s.Poles[ku-s.UDeg+i][kv-s.VDeg:kv+1])
		col[i] = deBoor(s.VKnots, s.VDeg, kv, v, row)
	}
	return deBoor(s.UKnots, s.UDeg, ku, u, col)
}
