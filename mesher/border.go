package mesher

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/katalvlaran/lvmesh/config"
	"github.com/katalvlaran/lvmesh/surface"
)

const (
	borderPieces   = 4  // initial uniform pieces per side
	borderMaxDepth = 10 // bisection depth per piece
)

// sampleBorder walks the rectangle rangeU × rangeV counter-clockwise and
// samples it with sampleLoop.
func sampleBorder(s surface.Surface, rangeU, rangeV r1.Interval, p config.Parameters) []r2.Point {
	return sampleLoop(s, []r2.Point{
		{X: rangeU.Lo, Y: rangeV.Lo},
		{X: rangeU.Hi, Y: rangeV.Lo},
		{X: rangeU.Hi, Y: rangeV.Hi},
		{X: rangeU.Lo, Y: rangeV.Hi},
	}, p)
}

// sampleLoop cuts every edge of the closed loop into uniform pieces and
// bisects each piece until the midpoint sagitta is within the deflection.
// Edges that collapse to a point in 3D keep their uniform pieces.
func sampleLoop(s surface.Surface, loop []r2.Point, p config.Parameters) []r2.Point {
	bs := borderSampler{surf: s, defl: p.Deflection, minSize: p.EffectiveMinSize()}
	var out []r2.Point
	for i, a := range loop {
		b := loop[(i+1)%len(loop)]
		for k := 0; k < borderPieces; k++ {
			pa := lerp(a, b, float64(k)/borderPieces)
			pb := lerp(a, b, float64(k+1)/borderPieces)
			out = append(out, pa)
			out = bs.split(out, pa, pb, 0)
		}
	}
	return out
}

func lerp(a, b r2.Point, t float64) r2.Point { return a.Add(b.Sub(a).Mul(t)) }

type borderSampler struct {
	surf    surface.Surface
	defl    float64
	minSize float64
}

// split appends the interior samples of (a, b), exclusive of both ends.
func (bs borderSampler) split(out []r2.Point, a, b r2.Point, depth int) []r2.Point {
	if depth >= borderMaxDepth {
		return out
	}
	m := lerp(a, b, 0.5)
	pa, pb := bs.surf.Point(a.X, a.Y), bs.surf.Point(b.X, b.Y)
	pm := bs.surf.Point(m.X, m.Y)
	chord := pb.Sub(pa)
	if chord.Norm() < bs.minSize || pm.Sub(pa.Add(chord.Mul(0.5))).Norm() <= bs.defl {
		return out
	}
	out = bs.split(out, a, m, depth+1)
	out = append(out, m)
	return bs.split(out, m, b, depth+1)
}
