package delaunay

import (
	"cmp"
	"math"
	"slices"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/katalvlaran/lvmesh/circles"
	"github.com/katalvlaran/lvmesh/deflection"
)

// NoVertex is the id Insert returns for a point it rejects outright.
const NoVertex = math.MinInt

// orientEps is the relative threshold under which three points are treated
// as collinear by the cavity shrinking step.
const orientEps = 1e-12

type triangle struct {
	v     [3]int
	alive bool
}

// Triangulation is an incremental Delaunay triangulation. Vertex ids are
// indices into Vertices; the super triangle uses ids -1, -2 and -3.
type Triangulation struct {
	opts  options
	box   r2.Rect
	verts []r2.Point
	super [3]r2.Point

	tool  *circles.Tool
	tris  []triangle     // indexed by circle slot
	edges map[[2]int]int // directed edge -> owning triangle
	live  int

	// per-insertion scratch
	stamp   uint32 // insertion epoch for shotAt
	visit   uint32 // collect epoch for cavAt
	shotAt  []uint32
	cavAt   []uint32
	shot    []int
	cavity  []int
	border  [][2]int
	skipped []int
}

// New triangulates points. cellsU and cellsV size the conflict index; values
// below the vertex count scaler are raised to it. Points are inserted in
// order of increasing x+y; duplicates are reported by Skipped.
func New(points []r2.Point, cellsU, cellsV int, opts ...Option) (*Triangulation, error) {
	if len(points) < 3 {
		return nil, ErrTooFewPoints
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bound := r2.RectFromPoints(points...)
	if !finiteRect(bound) || bound.X.Length() <= o.precision || bound.Y.Length() <= o.precision {
		return nil, ErrDegenerateBounds
	}

	t := &Triangulation{
		opts: o,
		box: r2.Rect{
			X: r1.Interval{Lo: bound.X.Lo - o.precision, Hi: bound.X.Hi + o.precision},
			Y: r1.Interval{Lo: bound.Y.Lo - o.precision, Hi: bound.Y.Hi + o.precision},
		},
		verts: slices.Clone(points),
		tool:  circles.NewTool(o.precision, 2*len(points)+8),
		edges: make(map[[2]int]int, 6*len(points)),
	}

	scaler := deflection.Scaler(len(points))
	t.tool.SetMinMaxSize(t.box.Lo(), t.box.Hi())
	t.tool.SetCellSize(
		t.box.X.Length()/float64(max(cellsU, scaler)),
		t.box.Y.Length()/float64(max(cellsV, scaler)),
	)

	t.superMesh()

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(points[a].X+points[a].Y, points[b].X+points[b].Y)
	})
	for _, id := range order {
		if _, ok := t.insert(id); !ok {
			t.skipped = append(t.skipped, id)
		}
	}

	if t.TriangleCount() == 0 {
		return nil, ErrDegenerateBounds
	}
	return t, nil
}

func finiteRect(r r2.Rect) bool {
	for _, x := range []float64{r.X.Lo, r.X.Hi, r.Y.Lo, r.Y.Hi} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// superMesh builds an equilateral triangle circumscribing the circle of
// radius superScale·max(Δx, Δy) around the box center.
func (t *Triangulation) superMesh() {
	c := t.box.Center()
	r := t.opts.superScale * max(t.box.X.Length(), t.box.Y.Length())
	for i := range t.super {
		a := math.Pi/2 + float64(i)*2*math.Pi/3
		t.super[i] = r2.Point{X: c.X + 2*r*math.Cos(a), Y: c.Y + 2*r*math.Sin(a)}
	}
	t.addTriangle(-1, -2, -3)
}

// point resolves a vertex id, super vertices included.
func (t *Triangulation) point(id int) r2.Point {
	if id < 0 {
		return t.super[-id-1]
	}
	return t.verts[id]
}

// Vertices returns the vertex table. The slice must not be modified.
func (t *Triangulation) Vertices() []r2.Point { return t.verts }

// Skipped returns the ids of points New could not insert (duplicates).
func (t *Triangulation) Skipped() []int { return t.skipped }

// Bounds returns the box points may be inserted in.
func (t *Triangulation) Bounds() r2.Rect { return t.box }

// Insert adds p and re-triangulates around it. It returns the new vertex id,
// or the id of an existing vertex within Precision of p with ok false. Points
// outside Bounds yield NoVertex.
func (t *Triangulation) Insert(p r2.Point) (id int, ok bool) {
	t.verts = append(t.verts, p)
	id, ok = t.insert(len(t.verts) - 1)
	if !ok {
		t.verts = t.verts[:len(t.verts)-1]
	}
	return id, ok
}

func (t *Triangulation) insert(id int) (int, bool) {
	p := t.verts[id]
	if !t.box.ContainsPoint(p) {
		return NoVertex, false
	}

	t.stamp++
	if t.stamp == 0 {
		clear(t.shotAt)
		t.stamp = 1
	}

	t.shot = append(t.shot[:0], t.tool.Select(p)...)
	seed := -1
	for _, ti := range t.shot {
		t.shotAt[ti] = t.stamp
		if seed < 0 && t.contains(ti, p) {
			seed = ti
		}
	}
	if seed < 0 {
		// rounding kept the enclosing triangle out of the conflict set
		for ti := range t.tris {
			if t.tris[ti].alive && t.contains(ti, p) {
				seed = ti
				t.shotAt[ti] = t.stamp
				break
			}
		}
	}
	if seed < 0 {
		return NoVertex, false
	}
	if dup, found := t.duplicate(seed, p); found {
		return dup, false
	}
	for _, ti := range t.shot {
		if dup, found := t.duplicate(ti, p); found {
			return dup, false
		}
	}

	if !t.growCavity(seed, p) {
		return NoVertex, false
	}

	for _, ti := range t.cavity {
		t.removeTriangle(ti)
	}
	for _, e := range t.border {
		t.addTriangle(e[0], e[1], id)
	}
	return id, true
}

// duplicate reports a real vertex of triangle ti within Precision of p.
func (t *Triangulation) duplicate(ti int, p r2.Point) (int, bool) {
	for _, v := range t.tris[ti].v {
		if v >= 0 && t.verts[v].Sub(p).Norm() <= t.opts.precision {
			return v, true
		}
	}
	return 0, false
}

// growCavity collects the conflicting triangles reachable from seed, then
// drops triangles owning a border edge that does not see p on its left until
// the cavity is star-shaped. It reports false if seed itself must go.
func (t *Triangulation) growCavity(seed int, p r2.Point) bool {
	for {
		t.collect(seed)
		bad := -1
		for _, e := range t.border {
			if !t.leftOf(e[0], e[1], p) {
				bad = t.edges[e]
				break
			}
		}
		if bad < 0 {
			return true
		}
		if bad == seed {
			return false
		}
		t.shotAt[bad] = 0
	}
}

// collect runs a BFS over shot neighbours from seed and fills cavity and
// border.
func (t *Triangulation) collect(seed int) {
	t.visit++
	if t.visit == 0 {
		clear(t.cavAt)
		t.visit = 1
	}
	t.cavity = append(t.cavity[:0], seed)
	t.border = t.border[:0]
	t.cavAt[seed] = t.visit
	for i := 0; i < len(t.cavity); i++ {
		v := t.tris[t.cavity[i]].v
		for k := 0; k < 3; k++ {
			a, b := v[k], v[(k+1)%3]
			nb, ok := t.edges[[2]int{b, a}]
			switch {
			case ok && t.cavAt[nb] == t.visit:
			case ok && t.shotAt[nb] == t.stamp:
				t.cavAt[nb] = t.visit
				t.cavity = append(t.cavity, nb)
			default:
				t.border = append(t.border, [2]int{a, b})
			}
		}
	}
}

// leftOf reports whether p lies strictly left of the directed edge a->b.
func (t *Triangulation) leftOf(a, b int, p r2.Point) bool {
	pa, pb := t.point(a), t.point(b)
	ab, ap := pb.Sub(pa), p.Sub(pa)
	return ab.Cross(ap) > orientEps*ab.Norm()*ap.Norm()
}

// contains reports whether p lies in triangle ti, borders included.
func (t *Triangulation) contains(ti int, p r2.Point) bool {
	return t.Contains(t.tris[ti].v, p)
}

func (t *Triangulation) addTriangle(a, b, c int) {
	slot, _ := t.tool.Add(t.point(a), t.point(b), t.point(c))
	for len(t.tris) <= slot {
		t.tris = append(t.tris, triangle{})
		t.shotAt = append(t.shotAt, 0)
		t.cavAt = append(t.cavAt, 0)
	}
	t.tris[slot] = triangle{v: [3]int{a, b, c}, alive: true}
	t.edges[[2]int{a, b}] = slot
	t.edges[[2]int{b, c}] = slot
	t.edges[[2]int{c, a}] = slot
	t.live++
}

func (t *Triangulation) removeTriangle(ti int) {
	tr := &t.tris[ti]
	for k := 0; k < 3; k++ {
		e := [2]int{tr.v[k], tr.v[(k+1)%3]}
		if t.edges[e] == ti {
			delete(t.edges, e)
		}
	}
	tr.alive = false
	t.tool.Delete(ti)
	t.live--
}

// Triangles returns the triangles that do not touch the super triangle, CCW.
func (t *Triangulation) Triangles() [][3]int {
	out := make([][3]int, 0, t.live)
	for _, tr := range t.tris {
		if tr.alive && tr.v[0] >= 0 && tr.v[1] >= 0 && tr.v[2] >= 0 {
			out = append(out, tr.v)
		}
	}
	return out
}

// TriangleCount returns len(Triangles()).
func (t *Triangulation) TriangleCount() int {
	n := 0
	for _, tr := range t.tris {
		if tr.alive && tr.v[0] >= 0 && tr.v[1] >= 0 && tr.v[2] >= 0 {
			n++
		}
	}
	return n
}

// Contains reports whether p lies in the triangle with vertices tri, borders
// included.
func (t *Triangulation) Contains(tri [3]int, p r2.Point) bool {
	for k := 0; k < 3; k++ {
		pa, pb := t.point(tri[k]), t.point(tri[(k+1)%3])
		ab, ap := pb.Sub(pa), p.Sub(pa)
		if ab.Cross(ap) < -orientEps*ab.Norm()*ap.Norm() {
			return false
		}
	}
	return true
}
