package rangesplit

import (
	"iter"
	"slices"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/katalvlaran/lvmesh/config"
	"github.com/katalvlaran/lvmesh/surface"
)

// knottedSurface is implemented by surfaces exposing their distinct knots.
type knottedSurface interface {
	UniqueKnots() (u, v []float64)
}

// knottedCurve is implemented by curves exposing their distinct knots.
type knottedCurve interface {
	UniqueKnots() []float64
}

// direction describes one parametric direction of a free-form surface.
type direction struct {
	degree int
	knots  []float64
}

// curveDirection describes the parameter of a generating curve.
func curveDirection(c surface.Curve) direction {
	d := direction{degree: 3}
	switch c.Type() {
	case surface.CurveLine:
		d.degree = 1
	case surface.CurveCircle:
		d.degree = 2
	case surface.CurveBezier, surface.CurveBSpline:
		if cp, ok := c.(surface.CurvePolynomial); ok {
			d.degree = cp.Degree()
		}
	case surface.CurveOther:
		// cubic default
	}
	if kc, ok := c.(knottedCurve); ok {
		d.knots = kc.UniqueKnots()
	}
	return d
}

// directions returns the U and V directions of the bound free-form surface.
func (sp *Splitter) directions() (u, v direction) {
	u, v = direction{degree: 3}, direction{degree: 3}
	switch sp.surf.Type() {
	case surface.TypeBezier, surface.TypeBSpline:
		if ps, ok := sp.surf.(surface.Polynomial); ok {
			u.degree, v.degree = ps.Degree()
		}
		if ks, ok := sp.surf.(knottedSurface); ok {
			u.knots, v.knots = ks.UniqueKnots()
		}
	case surface.TypeExtrusion:
		if sw, ok := sp.surf.(surface.Swept); ok {
			u = curveDirection(sw.BasisCurve())
		}
		v = direction{degree: 1}
	case surface.TypeRevolution:
		u = direction{degree: 2}
		if sw, ok := sp.surf.(surface.Swept); ok {
			v = curveDirection(sw.BasisCurve())
		}
	}
	return u, v
}

// seeds returns the initial parameters of one direction: the range ends and
// the knots inside the range, or degree+1 uniform pieces without knots; then
// every span is cut into degree pieces.
func seeds(iv r1.Interval, d direction) []float64 {
	base := []float64{iv.Lo, iv.Hi}
	for _, k := range d.knots {
		if k > iv.Lo && k < iv.Hi {
			base = append(base, k)
		}
	}
	if len(base) == 2 {
		n := d.degree + 1
		for i := 1; i < n; i++ {
			base = append(base, iv.Lo+iv.Length()*float64(i)/float64(n))
		}
	}
	slices.Sort(base)
	base = slices.Compact(base)

	pieces := max(d.degree, 1)
	out := make([]float64, 0, (len(base)-1)*pieces+1)
	for i := 0; i+1 < len(base); i++ {
		a, b := base[i], base[i+1]
		for k := 0; k < pieces; k++ {
			out = append(out, a+(b-a)*float64(k)/float64(pieces))
		}
	}
	return append(out, base[len(base)-1])
}

// refiner splits parameter intervals while the chord deviates from the
// surface by more than the deflection.
type refiner struct {
	eval     func(t float64, iso int) r3.Vector
	deflect  float64
	minSize  float64
	maxDepth int
	isolines int
}

// deviation returns the largest midpoint-to-chord distance of [a,b] over
// the isolines, and the shortest chord.
func (rf *refiner) deviation(a, b float64) (dev, chord float64) {
	m := (a + b) / 2
	chord = -1
	for i := 0; i < rf.isolines; i++ {
		pa, pb, pm := rf.eval(a, i), rf.eval(b, i), rf.eval(m, i)
		mid := pa.Add(pb).Mul(0.5)
		dev = max(dev, pm.Sub(mid).Norm())
		if c := pa.Sub(pb).Norm(); chord < 0 || c < chord {
			chord = c
		}
	}
	return dev, chord
}

// split appends the refined parameters of (a,b] to out.
func (rf *refiner) split(a, b float64, depth int, out []float64) []float64 {
	if depth < rf.maxDepth {
		dev, chord := rf.deviation(a, b)
		if dev > rf.deflect && chord >= rf.minSize {
			m := (a + b) / 2
			out = rf.split(a, m, depth+1, out)
			return rf.split(m, b, depth+1, out)
		}
	}
	return append(out, b)
}

func (rf *refiner) refine(params []float64) []float64 {
	out := []float64{params[0]}
	for i := 0; i+1 < len(params); i++ {
		out = rf.split(params[i], params[i+1], 0, out)
	}
	return out
}

// interior keeps the parameters farther than tol from both ends of iv.
func interior(params []float64, iv r1.Interval, tol float64) []float64 {
	out := params[:0:0]
	for _, t := range params {
		if t-iv.Lo > tol && iv.Hi-t > tol {
			out = append(out, t)
		}
	}
	return out
}

// thin keeps n evenly spread entries of params.
func thin(params []float64, n int) []float64 {
	if n >= len(params) {
		return params
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = params[(2*i+1)*len(params)/(2*n)]
	}
	return out
}

// nurbsNodes yields the interior tensor grid of a free-form surface, seeded
// at the knots and refined against the deflection along the first, middle
// and last isolines of the other direction.
func (sp *Splitter) nurbsNodes(p config.Parameters) iter.Seq[r2.Point] {
	return func(yield func(r2.Point) bool) {
		du, dv := sp.directions()
		vs := [3]float64{sp.rangeV.Lo, sp.rangeV.Center(), sp.rangeV.Hi}
		us := [3]float64{sp.rangeU.Lo, sp.rangeU.Center(), sp.rangeU.Hi}

		ru := refiner{
			eval:     func(t float64, i int) r3.Vector { return sp.surf.Point(t, vs[i]) },
			deflect:  p.Deflection,
			minSize:  p.EffectiveMinSize(),
			maxDepth: p.MaxSplitDepth,
			isolines: len(vs),
		}
		rv := ru
		rv.eval = func(t float64, i int) r3.Vector { return sp.surf.Point(us[i], t) }

		uParams := interior(ru.refine(seeds(sp.rangeU, du)), sp.rangeU, sp.tolerance.U)
		vParams := interior(rv.refine(seeds(sp.rangeV, dv)), sp.rangeV, sp.tolerance.V)
		nu, nv := sp.fitGrid(len(uParams), len(vParams), p.MaxNodes)
		uParams, vParams = thin(uParams, nu), thin(vParams, nv)
		for _, u := range uParams {
			for _, v := range vParams {
				if !yield(r2.Point{X: u, Y: v}) {
					return
				}
			}
		}
	}
}
