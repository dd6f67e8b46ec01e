package rangesplit

import (
	"iter"
	"math"

	"github.com/golang/geo/r2"
	"github.com/katalvlaran/lvmesh/config"
	"github.com/katalvlaran/lvmesh/deflection"
	"github.com/katalvlaran/lvmesh/surface"
)

// sphereStepGain tightens the sphere step so staggered rows stay within
// the deflection.
const sphereStepGain = 0.7

// coneSteps returns the U/V steps of the cone (or cylinder) grid. The V
// step grows sub-linearly with the generator length through
// ratio = max(1, ln(ΔV / (Du·R))).
func (sp *Splitter) coneSteps(p config.Parameters) (du, dv float64, ok bool) {
	var refR, angle float64
	switch s := sp.surf.(type) {
	case surface.Conical:
		refR, angle = s.RefRadius(), s.SemiAngle()
	case surface.Radial:
		refR = s.Radius()
	default:
		return 0, 0, false
	}

	sin := math.Sin(angle)
	radius := max(math.Abs(refR+sp.rangeV.Lo*sin), math.Abs(refR+sp.rangeV.Hi*sin))
	du = deflection.ArcAngularStep(radius, p.Deflection, p.Angle, p.MinSize)

	diffU, diffV := sp.rangeU.Length(), sp.rangeV.Length()
	scale := du * radius
	if !(scale > 0) {
		return 0, 0, false
	}
	ratio := max(1, math.Log(diffV/scale))
	nbU := int(diffU / du)
	nbV := int(diffV / scale / ratio)

	// coneNodes walks cols columns and rows rows
	cols, rows := sp.fitGrid(nbU, nbV+int(ratio)-1, p.MaxNodes)
	du = diffU / float64(cols+1)
	dv = diffV / float64(rows+1)
	return du, dv, true
}

// fitGrid shrinks an nu×nv grid by the same factor in both directions until
// it holds at most limit nodes. A non-positive limit disables the ceiling.
func (sp *Splitter) fitGrid(nu, nv, limit int) (int, int) {
	if limit <= 0 || nu <= 0 || nv <= 0 || float64(nu)*float64(nv) <= float64(limit) {
		return nu, nv
	}
	sp.capped = true
	k := math.Sqrt(float64(nu) * float64(nv) / float64(limit))
	nu = max(1, int(float64(nu)/k))
	nv = max(1, int(float64(nv)/k))
	for nu*nv > limit {
		if nu >= nv {
			nu--
		} else {
			nv--
		}
	}
	return nu, nv
}

// coneNodes yields the interior grid of a cone or cylinder.
func (sp *Splitter) coneNodes(p config.Parameters) iter.Seq[r2.Point] {
	return func(yield func(r2.Point) bool) {
		du, dv, ok := sp.coneSteps(p)
		if !ok {
			return
		}
		maxU := sp.rangeU.Hi - du/2
		maxV := sp.rangeV.Hi - dv/2
		for v := sp.rangeV.Lo + dv; v < maxV; v += dv {
			for u := sp.rangeU.Lo + du; u < maxU; u += du {
				if !yield(r2.Point{X: u, Y: v}) {
					return
				}
			}
		}
	}
}

// sphereNodes yields latitude rows. Each row holds a U count proportional
// to cos(v), and every other row is staggered by half a step.
func (sp *Splitter) sphereNodes(p config.Parameters) iter.Seq[r2.Point] {
	return func(yield func(r2.Point) bool) {
		rs, ok := sp.surf.(surface.Radial)
		if !ok {
			return
		}
		step := sphereStepGain * deflection.ArcAngularStep(rs.Radius(), p.Deflection, p.Angle, p.MinSize)
		if !(step > 0) {
			return
		}
		diffU, diffV := sp.rangeU.Length(), sp.rangeV.Length()
		// no row holds more than int(diffU/step)+1 nodes
		nu, nv := int(diffU/step)+1, int(diffV/step)
		if cu, cv := sp.fitGrid(nu, nv, p.MaxNodes); cu < nu || cv < nv {
			step = max(diffU/float64(max(cu-1, 1)), diffV/float64(max(cv, 1)))
		}
		dv := diffV / float64(int(diffV/step)+1)

		shift := false
		for v := sp.rangeV.Lo + dv; v < sp.rangeV.Hi-dv/2; v += dv {
			shift = !shift
			n := int(diffU*math.Abs(math.Cos(v))/step) + 1
			du := diffU / float64(n)
			u := sp.rangeU.Lo + du
			if shift {
				u = sp.rangeU.Lo + du/2
			}
			for ; u < sp.rangeU.Hi-du/4; u += du {
				if !yield(r2.Point{X: u, Y: v}) {
					return
				}
			}
		}
	}
}

// torusSteps returns the U/V steps of the torus grid: V from the minor
// circle, U from the outer equator damped towards the V step.
func (sp *Splitter) torusSteps(p config.Parameters) (du, dv float64, ok bool) {
	ts, ok := sp.surf.(surface.Toroidal)
	if !ok {
		return 0, 0, false
	}
	major, minor := ts.MajorRadius(), ts.MinorRadius()
	diffU, diffV := sp.rangeU.Length(), sp.rangeV.Length()

	rawDv := deflection.ArcAngularStep(minor, p.Deflection, p.Angle, p.MinSize)
	if !(rawDv > 0) {
		return 0, 0, false
	}
	nbV := max(int(diffV/rawDv), 2)
	dv = diffV / float64(nbV+1)

	du = dv
	if outer := major + minor; outer > 1e-16 {
		du = deflection.ArcAngularStep(outer, p.Deflection, p.Angle, p.MinSize)
		aa := math.Hypot(du, rawDv)
		if aa < 1e-300 {
			return 0, 0, false
		}
		du *= min(rawDv, du) / aa
	}
	nbU := max(int(diffU/du), 2)
	nbU = max(nbU, int(float64(nbV)*diffU*major/(diffV*minor)/5))
	nbU, nbV = sp.fitGrid(nbU, nbV, p.MaxNodes)
	du = diffU / float64(nbU+1)
	dv = diffV / float64(nbV+1)
	return du, dv, true
}

// torusNodes yields the interior grid of a torus.
func (sp *Splitter) torusNodes(p config.Parameters) iter.Seq[r2.Point] {
	return func(yield func(r2.Point) bool) {
		du, dv, ok := sp.torusSteps(p)
		if !ok {
			return
		}
		maxU := sp.rangeU.Hi - du/2
		maxV := sp.rangeV.Hi - dv/2
		for u := sp.rangeU.Lo + du; u < maxU; u += du {
			for v := sp.rangeV.Lo + dv; v < maxV; v += dv {
				if !yield(r2.Point{X: u, Y: v}) {
					return
				}
			}
		}
	}
}
