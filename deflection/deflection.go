package deflection

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/katalvlaran/lvmesh/surface"
)

const (
	// Confusion is the 3D distance below which two points coincide.
	Confusion = 1e-7
	// PConfusion is the parametric analogue of Confusion.
	PConfusion = 1e-9

	// NoHeuristic is the cell count sentinel for unclassified surfaces.
	NoHeuristic = -1

	// baseFactor multiplies the deflection to give the undamped error factor.
	baseFactor = 10
	// minCells is the floor applied to every heuristic cell count.
	minCells = 2
	// maxCells keeps cellsFor representable for absurd inputs.
	maxCells = 1 << 16
)

// ComputeErrorFactors returns the U and V error factors of s for the given
// deflection. Baseline is 10·deflection in both directions; polynomial
// directions of degree > 2 are divided by degree (Bezier) or degree·knots
// (B-spline). TypeOther yields (1, 1).
//
// Planes keep the baseline too: ComputeErrorFactors(0.01, plane) is
// (0.1, 0.1), not (1, 1). The planar cell counts are set from the vertex
// count by AdjustCellsCounts, so the factor only feeds InitialCellsCounts.
func ComputeErrorFactors(deflection float64, s surface.Surface) (u, v float64) {
	u = baseFactor * deflection
	v = u

	switch s.Type() {
	case surface.TypePlane, surface.TypeCylinder, surface.TypeCone,
		surface.TypeSphere, surface.TypeTorus:
		return u, v

	case surface.TypeExtrusion, surface.TypeRevolution:
		c := basisCurve(s)
		if c == nil || c.Type() != surface.CurveBSpline {
			return u, v
		}
		if deg, knots := curveDegree(c); deg > 2 {
			v /= float64(deg * max(knots, 1))
		}
		return u, v

	case surface.TypeBezier:
		du, dv := surfaceDegree(s)
		if du > 2 {
			u /= float64(du)
		}
		if dv > 2 {
			v /= float64(dv)
		}
		return u, v

	case surface.TypeBSpline:
		du, dv := surfaceDegree(s)
		ku, kv := surfaceKnots(s)
		if du > 2 {
			u /= float64(du * max(ku, 1))
		}
		if dv > 2 {
			v /= float64(dv * max(kv, 1))
		}
		return u, v

	case surface.TypeOther:
		return 1, 1
	}
	// values outside the closed set behave like TypeOther
	return 1, 1
}

// CurveErrorFactor is the one-dimensional analogue of ComputeErrorFactors.
func CurveErrorFactor(deflection float64, c surface.Curve) float64 {
	f := baseFactor * deflection
	switch c.Type() {
	case surface.CurveLine, surface.CurveCircle:
		return f
	case surface.CurveBezier:
		if deg, _ := curveDegree(c); deg > 2 {
			f /= float64(deg)
		}
		return f
	case surface.CurveBSpline:
		if deg, knots := curveDegree(c); deg > 2 {
			f /= float64(deg * max(knots, 1))
		}
		return f
	case surface.CurveOther:
		return 1
	}
	return 1
}

// cellsFor is ceil(2^log10(x)), the slowly growing cell count curve.
// Non-finite and sub-unit inputs give 1.
func cellsFor(x float64) int {
	if !(x > 1) || math.IsInf(x, 1) {
		return 1
	}
	return int(math.Min(math.Ceil(math.Pow(2, math.Log10(x))), maxCells))
}

// InitialCellsCounts derives default cell counts from the adjusted ranges,
// the sampling deltas (du, dv) and the error factors of s. The result is the
// input of AdjustCellsCounts.
func InitialCellsCounts(s surface.Surface, deflection float64, rangeU, rangeV r1.Interval, du, dv float64) (u, v int) {
	if s.Type() == surface.TypeOther {
		return NoHeuristic, NoHeuristic
	}
	efU, efV := ComputeErrorFactors(deflection, s)
	lenU, lenV := rangeU.Length(), rangeV.Length()

	if s.Type() == surface.TypeTorus {
		return cellsFor(lenU / du), cellsFor(lenV / dv)
	}
	return cellsFor(lenU / du / efU), cellsFor(lenV / dv / efV)
}

// AdjustCellsCounts overrides the counts of the geometrically flat directions
// of s with ceil(2^log10(vertexCount)) and applies a floor of 2 to both axes.
// Curved directions keep the caller's counts. TypeOther yields
// (NoHeuristic, NoHeuristic).
func AdjustCellsCounts(s surface.Surface, vertexCount, cellsU, cellsV int) (u, v int) {
	u, v = cellsU, cellsV
	h := cellsFor(float64(vertexCount))

	switch s.Type() {
	case surface.TypePlane:
		u, v = h, h

	case surface.TypeCylinder, surface.TypeCone:
		v = h

	case surface.TypeSphere, surface.TypeTorus:
		// curved in both directions

	case surface.TypeExtrusion:
		if flatCurve(basisCurve(s)) {
			u = h
		}
		v = h // the extrusion direction is a line

	case surface.TypeRevolution:
		if flatCurve(basisCurve(s)) {
			v = h
		}

	case surface.TypeBezier, surface.TypeBSpline:
		du, dv := surfaceDegree(s)
		if du < 2 {
			u = h
		}
		if dv < 2 {
			v = h
		}

	case surface.TypeOther:
		return NoHeuristic, NoHeuristic

	default: // outside the closed set
		return NoHeuristic, NoHeuristic
	}
	return max(u, minCells), max(v, minCells)
}

// Scaler is the fallback cell divisor used when no heuristic applies: 2 up
// to 100 vertices, 5 above, 7 above 1000.
func Scaler(vertexCount int) int {
	switch {
	case vertexCount > 1000:
		return 7
	case vertexCount > 100:
		return 5
	}
	return 2
}

// CellsCount runs AdjustCellsCounts and replaces the NoHeuristic sentinel,
// and any count below the fallback, with Scaler(vertexCount).
func CellsCount(s surface.Surface, vertexCount, cellsU, cellsV int) (u, v int) {
	u, v = AdjustCellsCounts(s, vertexCount, cellsU, cellsV)
	sc := Scaler(vertexCount)
	return max(u, sc), max(v, sc)
}

// ArcAngularStep returns the parameter step along an arc of the given
// radius that keeps the chord within linDefl and the turn within angDefl.
// A positive minSize bounds the step from below. Degenerate radii return
// angDefl.
func ArcAngularStep(radius, linDefl, angDefl, minSize float64) float64 {
	if radius <= PConfusion {
		return angDefl
	}
	step := 2 * math.Acos(max(1-linDefl/radius, 0))
	step = min(step, angDefl)
	if minSize > Confusion {
		step = max(step, minSize/radius)
	}
	return step
}

func basisCurve(s surface.Surface) surface.Curve {
	if sw, ok := s.(surface.Swept); ok {
		return sw.BasisCurve()
	}
	return nil
}

// flatCurve reports whether c is a line or a B-spline of degree < 2.
func flatCurve(c surface.Curve) bool {
	if c == nil {
		return false
	}
	switch c.Type() {
	case surface.CurveLine:
		return true
	case surface.CurveBSpline:
		deg, _ := curveDegree(c)
		return deg < 2
	}
	return false
}

func curveDegree(c surface.Curve) (degree, knots int) {
	if p, ok := c.(surface.CurvePolynomial); ok {
		return p.Degree(), p.KnotCount()
	}
	return 0, 0
}

func surfaceDegree(s surface.Surface) (u, v int) {
	if p, ok := s.(surface.Polynomial); ok {
		return p.Degree()
	}
	return 0, 0
}

func surfaceKnots(s surface.Surface) (u, v int) {
	if p, ok := s.(surface.Polynomial); ok {
		return p.KnotCount()
	}
	return 0, 0
}
