package rangesplit

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/katalvlaran/lvmesh/config"
	"github.com/katalvlaran/lvmesh/deflection"
	"github.com/katalvlaran/lvmesh/surface"
)

// ErrUnbound is the panic value (wrapped) raised when a Splitter is used
// before Reset.
var ErrUnbound = errors.New("rangesplit: splitter is not bound to a surface")

const (
	// uvDeflection caps the 2D tolerance.
	uvDeflection = 1e-5
	// resolutionGain slightly widens the parametric resolution so links of
	// about one resolution in length are still covered.
	resolutionGain = 1.1
	// lengthSegments is the number of polyline segments per isoline used to
	// estimate the 3D extent of a direction.
	lengthSegments = 20
)

// Pair holds one value per parametric direction.
type Pair struct {
	U, V float64
}

// Splitter is the parametric range state of a single surface. The zero
// value is unbound. A Splitter is not safe for concurrent use.
type Splitter struct {
	surf   surface.Surface
	params config.Parameters
	bound  bool
	valid  bool

	geomU, geomV r1.Interval
	perU, perV   float64

	rangeU, rangeV r1.Interval
	length         Pair
	delta          Pair
	tolerance      Pair

	capped bool
}

// New returns a splitter bound to s.
func New(s surface.Surface, p config.Parameters) *Splitter {
	sp := &Splitter{}
	sp.Reset(s, p)
	return sp
}

// Reset binds s and p, sets the geometric range to the natural domain of s
// and clears the discrete range. The splitter is invalid when the domain
// has (near) zero measure.
func (sp *Splitter) Reset(s surface.Surface, p config.Parameters) {
	*sp = Splitter{
		surf:      s,
		params:    p,
		bound:     true,
		rangeU:    r1.EmptyInterval(),
		rangeV:    r1.EmptyInterval(),
		delta:     Pair{1, 1},
		tolerance: Pair{deflection.Confusion, deflection.Confusion},
	}
	sp.geomU, sp.geomV = s.Domain()
	sp.perU, sp.perV = s.Periodicity()
	sp.valid = usable(sp.geomU) && usable(sp.geomV)
}

// usable reports whether iv is finite with a length above PConfusion.
func usable(iv r1.Interval) bool {
	return !math.IsInf(iv.Lo, 0) && !math.IsInf(iv.Hi, 0) &&
		iv.Length() > deflection.PConfusion
}

func (sp *Splitter) mustBeBound(op string) {
	if !sp.bound {
		panic(fmt.Errorf("%w: %s", ErrUnbound, op))
	}
}

// IsBound reports whether Reset has been called.
func (sp *Splitter) IsBound() bool { return sp.bound }

// IsValid reports whether the bound surface still has a meshable range.
func (sp *Splitter) IsValid() bool { return sp.bound && sp.valid }

// Surface returns the bound surface.
func (sp *Splitter) Surface() surface.Surface { return sp.surf }

// Parameters returns the bound parameters.
func (sp *Splitter) Parameters() config.Parameters { return sp.params }

// GeomRange returns the natural domain of the bound surface.
func (sp *Splitter) GeomRange() (u, v r1.Interval) { return sp.geomU, sp.geomV }

// Range returns the discrete range: the hull of the registered points until
// AdjustRange fits it into the geometric range.
func (sp *Splitter) Range() (u, v r1.Interval) { return sp.rangeU, sp.rangeV }

// Delta returns the face basis scale per direction.
func (sp *Splitter) Delta() Pair { return sp.delta }

// Tolerance returns the 2D tolerance per direction.
func (sp *Splitter) Tolerance() Pair { return sp.tolerance }

// Length returns the estimated 3D extent of the discrete range.
func (sp *Splitter) Length() Pair { return sp.length }

// AddPoint registers a parametric sample used by AdjustRange.
func (sp *Splitter) AddPoint(p r2.Point) {
	sp.mustBeBound("AddPoint")
	sp.rangeU = sp.rangeU.AddPoint(p.X)
	sp.rangeV = sp.rangeV.AddPoint(p.Y)
}

// AdjustRange fits the discrete range into the geometric one, then derives
// tolerance and delta from the 3D extent. With no registered points the
// whole geometric range is used.
func (sp *Splitter) AdjustRange() {
	sp.mustBeBound("AdjustRange")
	if !sp.valid {
		return
	}
	if sp.rangeU.IsEmpty() || sp.rangeV.IsEmpty() {
		sp.rangeU, sp.rangeV = sp.geomU, sp.geomV
	}

	var ok bool
	if sp.rangeU, ok = updateRange(sp.geomU, sp.perU, sp.rangeU); !ok {
		sp.valid = false
		return
	}
	if sp.rangeV, ok = updateRange(sp.geomV, sp.perV, sp.rangeV); !ok {
		sp.valid = false
		return
	}

	sp.length = Pair{sp.computeLengthU(), sp.computeLengthV()}
	sp.valid = sp.length.U > deflection.PConfusion && sp.length.V > deflection.PConfusion
	if sp.valid {
		sp.computeTolerance()
		sp.computeDelta()
	}
}

// updateRange fits one direction of the discrete range. Periodic ranges are
// shifted by whole periods so that Lo lies in [geom.Lo, geom.Lo+period) and
// capped to one period; other ranges are clamped into geom. It reports false
// for a degenerate or disjoint result.
func updateRange(geom r1.Interval, period float64, d r1.Interval) (r1.Interval, bool) {
	if period > 0 {
		if d.Length() > period {
			d.Hi = d.Lo + period
		}
		if d.Lo < geom.Lo || d.Lo >= geom.Lo+period {
			shift := math.Floor((d.Lo-geom.Lo)/period) * period
			d.Lo -= shift
			d.Hi -= shift
		}
	} else {
		if !d.Intersects(geom) {
			return d, false
		}
		d = d.Intersection(geom)
	}
	return d, d.Length() > deflection.PConfusion
}

// computeLengthU averages the lengths of three U isolines (first, middle and
// last V) sampled as 20-segment polylines.
func (sp *Splitter) computeLengthU() float64 {
	vs := [3]float64{sp.rangeV.Lo, sp.rangeV.Center(), sp.rangeV.Hi}
	return sp.isolineLength(func(t float64, i int) r2.Point { return r2.Point{X: t, Y: vs[i]} }, sp.rangeU)
}

// computeLengthV is computeLengthU with the directions swapped.
func (sp *Splitter) computeLengthV() float64 {
	us := [3]float64{sp.rangeU.Lo, sp.rangeU.Center(), sp.rangeU.Hi}
	return sp.isolineLength(func(t float64, i int) r2.Point { return r2.Point{X: us[i], Y: t} }, sp.rangeV)
}

func (sp *Splitter) isolineLength(at func(t float64, i int) r2.Point, iv r1.Interval) float64 {
	step := iv.Length() / lengthSegments
	total := 0.0
	for i := 0; i < 3; i++ {
		p := at(iv.Lo, i)
		prev := sp.surf.Point(p.X, p.Y)
		for k := 1; k <= lengthSegments; k++ {
			p = at(iv.Lo+float64(k)*step, i)
			cur := sp.surf.Point(p.X, p.Y)
			total += cur.Sub(prev).Norm()
			prev = cur
		}
	}
	return total / 3
}

// computeTolerance derives the 2D tolerance from the surface resolution
// of the 3D tolerance, bounded by uvDeflection and 1e-7 of the range.
func (sp *Splitter) computeTolerance() {
	tol3d := max(sp.params.MinSize, deflection.Confusion)
	sp.tolerance = Pair{
		U: directionTolerance(tol3d, sp.rangeU.Length(), sp.length.U),
		V: directionTolerance(tol3d, sp.rangeV.Length(), sp.length.V),
	}
}

func directionTolerance(tol3d, diff, length float64) float64 {
	res := tol3d * diff / length * resolutionGain
	return max(min(uvDeflection, res), 1e-7*diff)
}

// computeDelta sets Δ = diff / L where L is the 3D extent, 1 when the extent
// is below the 2D tolerance, and at most MaxScaledExtent.
func (sp *Splitter) computeDelta() {
	ext := func(length, tol float64) float64 {
		if length < tol {
			return 1
		}
		if sp.params.MaxScaledExtent > 0 {
			return min(length, sp.params.MaxScaledExtent)
		}
		return length
	}
	sp.delta = Pair{
		U: sp.rangeU.Length() / ext(sp.length.U, sp.tolerance.U),
		V: sp.rangeV.Length() / ext(sp.length.V, sp.tolerance.V),
	}
}

// Scale maps p into the face basis when toFaceBasis is set, and back from
// it otherwise. The two directions are exact inverses up to rounding.
func (sp *Splitter) Scale(p r2.Point, toFaceBasis bool) r2.Point {
	sp.mustBeBound("Scale")
	if toFaceBasis {
		return r2.Point{
			X: (p.X - sp.rangeU.Lo) / sp.delta.U,
			Y: (p.Y - sp.rangeV.Lo) / sp.delta.V,
		}
	}
	return r2.Point{
		X: p.X*sp.delta.U + sp.rangeU.Lo,
		Y: p.Y*sp.delta.V + sp.rangeV.Lo,
	}
}

// GenerateSurfaceNodes returns the interior seed points of the bound surface
// in native parameters. The sequence is empty for an invalid splitter and for
// surfaces needing no interior seeding. It never yields more than
// p.MaxNodes points: grids that would exceed it are coarsened evenly, and
// Capped reports it once the sequence has run.
func (sp *Splitter) GenerateSurfaceNodes(p config.Parameters) iter.Seq[r2.Point] {
	return sp.limit(sp.surfaceNodes(p), p.MaxNodes)
}

// Capped reports whether the last run of a GenerateSurfaceNodes sequence hit
// the MaxNodes ceiling.
func (sp *Splitter) Capped() bool { return sp.capped }

// limit resets the capped flag on every run and stops seq after n points.
func (sp *Splitter) limit(seq iter.Seq[r2.Point], n int) iter.Seq[r2.Point] {
	return func(yield func(r2.Point) bool) {
		sp.capped = false
		k := 0
		for q := range seq {
			if n > 0 && k == n {
				sp.capped = true
				return
			}
			k++
			if !yield(q) {
				return
			}
		}
	}
}

func (sp *Splitter) surfaceNodes(p config.Parameters) iter.Seq[r2.Point] {
	sp.mustBeBound("GenerateSurfaceNodes")
	if !sp.valid || sp.rangeU.IsEmpty() || sp.rangeV.IsEmpty() {
		return empty
	}

	switch sp.surf.Type() {
	case surface.TypePlane, surface.TypeOther:
		return empty
	case surface.TypeCylinder, surface.TypeCone:
		return sp.coneNodes(p)
	case surface.TypeSphere:
		return sp.sphereNodes(p)
	case surface.TypeTorus:
		return sp.torusNodes(p)
	case surface.TypeBezier, surface.TypeBSpline, surface.TypeExtrusion, surface.TypeRevolution:
		return sp.nurbsNodes(p)
	}
	return empty
}

// empty is the sequence with no points.
func empty(func(r2.Point) bool) {}
