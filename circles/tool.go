package circles

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/katalvlaran/lvmesh/cellfilter"
)

// Tool couples a Registry with the spatial index of circle boxes. Call
// SetMinMaxSize (and optionally SetCellSize) before binding circles: boxes
// outside the face min/max are not indexed.
type Tool struct {
	reg    *Registry
	filter *cellfilter.Filter[Handle]

	faceMin, faceMax r2.Point
	cellX, cellY     float64
}

// NewTool returns a tool with conflict tolerance tolerance and room for
// reserved circles.
func NewTool(tolerance float64, reserved int) *Tool {
	return &Tool{
		reg:    NewRegistry(tolerance, reserved),
		filter: cellfilter.New[Handle](r2.EmptyRect(), 0, 0),
	}
}

// Registry exposes the underlying registry.
func (t *Tool) Registry() *Registry { return t.reg }

// Filter exposes the underlying spatial index.
func (t *Tool) Filter() *cellfilter.Filter[Handle] { return t.filter }

// SetCellSize sets the spatial index cell size and re-grids the index.
func (t *Tool) SetCellSize(sizeX, sizeY float64) {
	t.cellX, t.cellY = sizeX, sizeY
	t.regrid()
}

// SetMinMaxSize sets the face bounds that circle boxes are clamped to and
// re-grids the index.
func (t *Tool) SetMinMaxSize(lo, hi r2.Point) {
	t.faceMin, t.faceMax = lo, hi
	t.regrid()
}

// regrid rebuilds the index over the face bounds, re-adding live circles.
func (t *Tool) regrid() {
	t.filter.Reset(r2.RectFromPoints(t.faceMin, t.faceMax), t.cellX, t.cellY)
	for i := 0; i < t.reg.Len(); i++ {
		s := &t.reg.slots[i]
		if !s.circle.Purged() {
			t.index(Handle{Index: i, Gen: s.gen}, s.circle)
		}
	}
}

// index stores the box of the conflict band of c: a point at distance d is
// shot while d² - r² ≤ tol², so the box reaches out to sqrt(r² + tol²).
func (t *Tool) index(h Handle, c Circle) {
	band := c
	band.Radius = math.Sqrt(c.Radius*c.Radius + t.reg.tol2)
	box := band.Bound()
	// clamp the box to the face; the filter drops boxes that miss it
	box.X.Lo, box.Y.Lo = max(box.X.Lo, t.faceMin.X), max(box.Y.Lo, t.faceMin.Y)
	box.X.Hi, box.Y.Hi = min(box.X.Hi, t.faceMax.X), min(box.Y.Hi, t.faceMax.Y)
	t.filter.Add(h, box)
}

// Bind stores the circumcircle of p1, p2, p3 at slot index. It reports
// false, leaving the slot untouched, when the points are degenerate.
func (t *Tool) Bind(index int, p1, p2, p3 r2.Point) bool {
	c, ok := MakeCircle(p1, p2, p3)
	if !ok {
		return false
	}
	t.BindCircle(index, c)
	return true
}

// BindCircle stores c at slot index and indexes its box.
func (t *Tool) BindCircle(index int, c Circle) {
	h := t.reg.Bind(index, c)
	if !c.Purged() {
		t.index(h, c)
	}
}

// Add stores the circumcircle of p1, p2, p3 in a free slot and returns the
// slot. Degenerate points get a purged circle; ok is false then.
func (t *Tool) Add(p1, p2, p3 r2.Point) (index int, ok bool) {
	c, ok := MakeCircle(p1, p2, p3)
	if !ok {
		return t.reg.Add(Circle{Radius: -1}).Index, false
	}
	h := t.reg.Add(c)
	t.index(h, c)
	return h.Index, true
}

// Update re-indexes slot index after its circle was edited in place through
// Registry().Circle. The slot gets a new generation, so the entries of the
// old box are purged when a query touches them. Edits made without Update
// leave the index on the old box.
func (t *Tool) Update(index int) {
	t.reg.checkIndex(index)
	c := t.reg.slots[index].circle
	if c.Purged() {
		t.reg.Delete(index)
		return
	}
	t.BindCircle(index, c)
}

// MocBind occupies slot index with a purged circle. Used for elements
// whose circumcircle cannot be built; they never conflict.
func (t *Tool) MocBind(index int) {
	t.reg.Bind(index, Circle{Radius: -1})
}

// Delete purges the circle at slot index. Its index entries are dropped
// lazily by later queries.
func (t *Tool) Delete(index int) {
	if index >= 0 && index < t.reg.Len() {
		t.reg.Delete(index)
	}
}

// Select returns the slots of the circles shot by p. The slice is only
// valid until the next Select.
func (t *Tool) Select(p r2.Point) []int {
	t.reg.SetPoint(p)
	t.filter.Inspect(p, t.reg)
	return t.reg.ShotCircles()
}
