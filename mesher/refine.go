package mesher

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/katalvlaran/lvmesh/config"
	"github.com/katalvlaran/lvmesh/delaunay"
	"github.com/katalvlaran/lvmesh/rangesplit"
	"github.com/katalvlaran/lvmesh/surface"
)

// normalStep is the finite difference step relative to the range length.
const normalStep = 1e-6

// refiner inserts triangle centroids until every facet is within the
// deflection and angle of the surface, or its longest 3D edge is below
// MinSize.
type refiner struct {
	surf surface.Surface
	sp   *rangesplit.Splitter
	tr   *delaunay.Triangulation
	poly []r2.Point // native (U,V); nil for the whole range

	defl, angle, minSize float64
	maxNodes             int // stops surfaces that never converge

	nodes []r3.Vector // 3D node cache by vertex id
	known []bool
}

func newRefiner(s surface.Surface, sp *rangesplit.Splitter, tr *delaunay.Triangulation, poly []r2.Point, p config.Parameters) *refiner {
	return &refiner{
		surf:     s,
		sp:       sp,
		tr:       tr,
		poly:     poly,
		defl:     p.InteriorDeflection(),
		angle:    p.InteriorAngle(),
		minSize:  p.EffectiveMinSize(),
		maxNodes: p.MaxNodes,
	}
}

// native maps vertex id back to surface parameters.
func (rf *refiner) native(id int) r2.Point {
	return rf.sp.Scale(rf.tr.Vertices()[id], false)
}

func (rf *refiner) node(id int) r3.Vector {
	for len(rf.nodes) <= id {
		rf.nodes = append(rf.nodes, r3.Vector{})
		rf.known = append(rf.known, false)
	}
	if !rf.known[id] {
		q := rf.native(id)
		rf.nodes[id] = rf.surf.Point(q.X, q.Y)
		rf.known[id] = true
	}
	return rf.nodes[id]
}

// inFace reports whether the triangle belongs to the face.
func (rf *refiner) inFace(centroid r2.Point) bool {
	return rf.poly == nil || insidePolygon(rf.poly, centroid)
}

// run performs at most maxPasses insertion passes and returns how many
// inserted at least one node.
func (rf *refiner) run(maxPasses int) int {
	passes := 0
	for passes < maxPasses && len(rf.tr.Vertices()) < rf.maxNodes {
		var todo []r2.Point
		for _, t := range rf.tr.Triangles() {
			if c, ok := rf.check(t); ok {
				todo = append(todo, c)
			}
		}
		inserted := 0
		for _, c := range todo {
			if _, ok := rf.tr.Insert(c); ok {
				inserted++
			}
		}
		if inserted == 0 {
			break
		}
		passes++
	}
	if len(rf.tr.Vertices()) >= rf.maxNodes {
		Logger().Warn("refinement stopped at node limit", "nodes", len(rf.tr.Vertices()))
	}
	return passes
}

// check returns the face-basis centroid of t when t needs splitting.
func (rf *refiner) check(t [3]int) (r2.Point, bool) {
	verts := rf.tr.Vertices()
	c := verts[t[0]].Add(verts[t[1]]).Add(verts[t[2]]).Mul(1.0 / 3)
	uv := rf.sp.Scale(c, false)
	if !rf.inFace(uv) {
		return r2.Point{}, false
	}

	a, b, d := rf.node(t[0]), rf.node(t[1]), rf.node(t[2])
	longest := max(b.Sub(a).Norm(), d.Sub(b).Norm(), a.Sub(d).Norm())
	if longest < rf.minSize {
		return r2.Point{}, false
	}

	g := a.Add(b).Add(d).Mul(1.0 / 3)
	if rf.surf.Point(uv.X, uv.Y).Sub(g).Norm() > rf.defl {
		return c, true
	}

	facet := b.Sub(a).Cross(d.Sub(a))
	normal := rf.normal(uv)
	fn, sn := facet.Norm(), normal.Norm()
	if fn <= 0 || sn <= 0 {
		return r2.Point{}, false
	}
	cos := math.Abs(facet.Dot(normal)) / (fn * sn)
	if math.Acos(min(cos, 1)) > rf.angle {
		return c, true
	}
	return r2.Point{}, false
}

// normal estimates the surface normal at uv by central differences clamped
// to the adjusted range. The zero vector marks a singular point.
func (rf *refiner) normal(uv r2.Point) r3.Vector {
	ru, rv := rf.sp.Range()
	hu, hv := normalStep*ru.Length(), normalStep*rv.Length()
	u0, u1 := ru.ClampPoint(uv.X-hu), ru.ClampPoint(uv.X+hu)
	v0, v1 := rv.ClampPoint(uv.Y-hv), rv.ClampPoint(uv.Y+hv)
	du := rf.surf.Point(u1, uv.Y).Sub(rf.surf.Point(u0, uv.Y))
	dv := rf.surf.Point(uv.X, v1).Sub(rf.surf.Point(uv.X, v0))
	return du.Cross(dv)
}

// mesh collects the face triangles and their referenced vertices.
func (rf *refiner) mesh() *Mesh {
	verts := rf.tr.Vertices()
	remap := make([]int, len(verts))
	for i := range remap {
		remap[i] = -1
	}
	m := &Mesh{}
	for _, t := range rf.tr.Triangles() {
		c := verts[t[0]].Add(verts[t[1]]).Add(verts[t[2]]).Mul(1.0 / 3)
		if !rf.inFace(rf.sp.Scale(c, false)) {
			continue
		}
		var out [3]int
		for k, id := range t {
			if remap[id] < 0 {
				remap[id] = len(m.UV)
				m.UV = append(m.UV, rf.native(id))
				m.Nodes = append(m.Nodes, rf.node(id))
			}
			out[k] = remap[id]
		}
		m.Triangles = append(m.Triangles, out)
	}
	return m
}
