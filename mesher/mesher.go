package mesher

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/katalvlaran/lvmesh/config"
	"github.com/katalvlaran/lvmesh/deflection"
	"github.com/katalvlaran/lvmesh/delaunay"
	"github.com/katalvlaran/lvmesh/rangesplit"
	"github.com/katalvlaran/lvmesh/surface"
)

// Face is a trimmed patch of a surface.
type Face struct {
	Surface surface.Surface

	// Boundary is the outer loop in native (U,V) parameters, in either
	// orientation. With fewer than 3 points the face is the whole adjusted
	// parameter rectangle.
	Boundary []r2.Point
}

// Mesh is the tessellation of one face. UV and Nodes are parallel arrays;
// Triangles index into both and are counter-clockwise in (U,V).
type Mesh struct {
	UV        []r2.Point
	Nodes     []r3.Vector
	Triangles [][3]int
}

// Area returns the total 3D area of the triangles.
func (m *Mesh) Area() float64 {
	var a float64
	for _, t := range m.Triangles {
		p, q, r := m.Nodes[t[0]], m.Nodes[t[1]], m.Nodes[t[2]]
		a += q.Sub(p).Cross(r.Sub(p)).Norm() / 2
	}
	return a
}

// MaxDeflection returns the largest distance between a triangle centroid and
// the surface point at the centroid's (U,V).
func (m *Mesh) MaxDeflection(s surface.Surface) float64 {
	var worst float64
	for _, t := range m.Triangles {
		c := m.UV[t[0]].Add(m.UV[t[1]]).Add(m.UV[t[2]]).Mul(1.0 / 3)
		g := m.Nodes[t[0]].Add(m.Nodes[t[1]]).Add(m.Nodes[t[2]]).Mul(1.0 / 3)
		worst = max(worst, s.Point(c.X, c.Y).Sub(g).Norm())
	}
	return worst
}

// MeshFace tessellates one face. Parameter errors come from
// config.Parameters.Validate; a face whose domain collapses yields
// ErrDegenerateDomain.
func MeshFace(face Face, p config.Parameters) (*Mesh, error) {
	if face.Surface == nil {
		return nil, ErrNilSurface
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := face.Surface
	log := Logger().With("surface", s.Type().String())

	sp := rangesplit.New(s, p)
	for _, q := range face.Boundary {
		sp.AddPoint(q)
	}
	sp.AdjustRange()
	if !sp.IsValid() {
		log.Warn("degenerate face domain")
		return nil, fmt.Errorf("%s: %w", s.Type(), ErrDegenerateDomain)
	}
	rangeU, rangeV := sp.Range()

	var poly []r2.Point
	var uv []r2.Point
	if len(face.Boundary) >= 3 {
		poly = shiftIntoRange(face.Boundary, s, rangeU, rangeV)
		uv = sampleLoop(s, poly, p)
	} else {
		uv = sampleBorder(s, rangeU, rangeV, p)
	}
	border := len(uv)
	for q := range sp.GenerateSurfaceNodes(p) {
		if poly == nil || insidePolygon(poly, q) {
			uv = append(uv, q)
		}
	}
	if sp.Capped() {
		log.Warn("surface nodes coarsened to node limit", "limit", p.MaxNodes, "nodes", len(uv)-border)
	}

	pts := make([]r2.Point, len(uv))
	for i, q := range uv {
		pts[i] = sp.Scale(q, true)
	}

	d := sp.Delta()
	cu, cv := deflection.InitialCellsCounts(s, p.Deflection, rangeU, rangeV, d.U, d.V)
	if cu == deflection.NoHeuristic {
		log.Debug("no cell heuristic, using scaler", "nodes", len(pts))
	}
	cu, cv = deflection.CellsCount(s, len(pts), cu, cv)

	tr, err := delaunay.New(pts, cu, cv)
	if err != nil {
		log.Warn("face cannot be triangulated", "nodes", len(pts), "err", err)
		return nil, fmt.Errorf("%s: %w: %w", s.Type(), ErrDegenerateDomain, err)
	}

	rf := newRefiner(s, sp, tr, poly, p)
	passes := 0
	if p.ControlSurfaceDeflection {
		passes = rf.run(p.MaxRefinementPasses)
	}

	m := rf.mesh()
	log.Debug("face meshed",
		"border", border,
		"nodes", len(m.UV),
		"cellsU", cu, "cellsV", cv,
		"triangles", len(m.Triangles),
		"passes", passes,
	)
	return m, nil
}

// shiftIntoRange moves a boundary loop by whole periods so it lines up with
// the adjusted range, which AdjustRange may have shifted.
func shiftIntoRange(loop []r2.Point, s surface.Surface, rangeU, rangeV r1.Interval) []r2.Point {
	raw := r2.RectFromPoints(loop...)
	perU, perV := s.Periodicity()
	shift := r2.Point{X: periodShift(raw.X.Lo, rangeU.Lo, perU), Y: periodShift(raw.Y.Lo, rangeV.Lo, perV)}
	out := make([]r2.Point, len(loop))
	for i, q := range loop {
		out[i] = q.Add(shift)
	}
	return out
}

func periodShift(from, to, period float64) float64 {
	if period <= 0 {
		return 0
	}
	return math.Round((to-from)/period) * period
}

// insidePolygon is the even-odd ray casting test.
func insidePolygon(poly []r2.Point, p r2.Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
