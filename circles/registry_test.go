package circles_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/katalvlaran/lvmesh/cellfilter"
	"github.com/katalvlaran/lvmesh/circles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unit returns a registry holding one circle centered at the origin with
// radius 5 and tolerance² = 0.01.
func unit(t *testing.T) (*circles.Registry, circles.Handle) {
	t.Helper()
	r := circles.NewRegistry(0.1, 4)
	h := r.Bind(0, circles.Circle{Radius: 5})
	return r, h
}

// TestInspect_OutsideBand keeps the circle without shooting it (5.05 from the center).
func TestInspect_OutsideBand(t *testing.T) {
	r, h := unit(t)
	r.SetPoint(r2.Point{X: 5.05})
	assert.Equal(t, cellfilter.Keep, r.Inspect(h))
	assert.Empty(t, r.ShotCircles())
}

// TestInspect_ApproximateBoundary documents the d²-r² ≤ tol² rule: a point
// within r+tol (5.0049 < 5.1) is still not shot.
func TestInspect_ApproximateBoundary(t *testing.T) {
	r, h := unit(t)
	r.SetPoint(r2.Point{Y: 5.0049})
	assert.Equal(t, cellfilter.Keep, r.Inspect(h))
	assert.Empty(t, r.ShotCircles())

	// inside the narrow band: 5.0009² - 25 ≈ 0.009
	r.SetPoint(r2.Point{Y: 5.0009})
	assert.Equal(t, cellfilter.Keep, r.Inspect(h))
	assert.Equal(t, []int{0}, r.ShotCircles())
}

// TestInspect_Inside shoots a circle whose disk contains the point.
func TestInspect_Inside(t *testing.T) {
	r, h := unit(t)
	r.SetPoint(r2.Point{X: 1, Y: -2})
	assert.Equal(t, cellfilter.Keep, r.Inspect(h))
	assert.Equal(t, []int{0}, r.ShotCircles())
}

// TestInspect_Purged returns Purge for negative radii wherever the point is.
func TestInspect_Purged(t *testing.T) {
	r, h := unit(t)
	r.Circle(0).Radius = -1
	for _, p := range []r2.Point{{}, {X: 100}, {X: 5, Y: 0}} {
		r.SetPoint(p)
		assert.Equal(t, cellfilter.Purge, r.Inspect(h))
		assert.Empty(t, r.ShotCircles())
	}
}

// TestInspect_Idempotent repeats Inspect without duplicating results.
func TestInspect_Idempotent(t *testing.T) {
	r, h := unit(t)
	r.SetPoint(r2.Point{X: 1})
	first := r.Inspect(h)
	second := r.Inspect(h)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{0}, r.ShotCircles())

	// SetPoint clears the list
	r.SetPoint(r2.Point{X: 2})
	assert.Empty(t, r.ShotCircles())
	r.Inspect(h)
	assert.Equal(t, []int{0}, r.ShotCircles())
}

// TestBind_StaleHandle purges entries left by a previous slot occupant.
func TestBind_StaleHandle(t *testing.T) {
	r := circles.NewRegistry(0, 0)
	old := r.Bind(3, circles.Circle{Radius: 1})
	fresh := r.Bind(3, circles.Circle{Radius: 2})

	assert.NotEqual(t, old.Gen, fresh.Gen)
	assert.False(t, r.Valid(old))
	assert.True(t, r.Valid(fresh))

	r.SetPoint(r2.Point{})
	assert.Equal(t, cellfilter.Purge, r.Inspect(old))
	assert.Equal(t, cellfilter.Keep, r.Inspect(fresh))
	assert.Equal(t, []int{3}, r.ShotCircles())
	assert.Equal(t, 4, r.Len())
}

// TestAdd_ReusesFreedSlots checks the free list.
func TestAdd_ReusesFreedSlots(t *testing.T) {
	r := circles.NewRegistry(0, 0)
	a := r.Add(circles.Circle{Radius: 1})
	b := r.Add(circles.Circle{Radius: 1})
	require.Equal(t, 0, a.Index)
	require.Equal(t, 1, b.Index)

	r.Delete(a.Index)
	r.Delete(a.Index) // freed once
	assert.False(t, r.Valid(a))

	c := r.Add(circles.Circle{Radius: 3})
	assert.Equal(t, a.Index, c.Index)
	assert.True(t, r.Valid(c))
	assert.False(t, r.Valid(a))

	d := r.Add(circles.Circle{Radius: 4})
	assert.Equal(t, 2, d.Index)
}

// TestAdd_SkipsRebound does not hand out a freed slot that was bound again.
func TestAdd_SkipsRebound(t *testing.T) {
	r := circles.NewRegistry(0, 0)
	r.Bind(0, circles.Circle{Radius: 1})
	r.Delete(0)
	r.Bind(0, circles.Circle{Radius: 2})

	h := r.Add(circles.Circle{Radius: 3})
	assert.Equal(t, 1, h.Index)
	assert.Equal(t, 2.0, r.Circle(0).Radius)
}

// TestBind_GrowsWithPurgedGaps fills skipped slots with purged circles.
func TestBind_GrowsWithPurgedGaps(t *testing.T) {
	r := circles.NewRegistry(0, 0)
	r.Bind(2, circles.Circle{Radius: 1})
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Circle(0).Purged())
	assert.True(t, r.Circle(1).Purged())

	h := r.Add(circles.Circle{Radius: 1})
	assert.Less(t, h.Index, 2)
}

// TestCircle_OutOfRangePanics treats bad slots as contract violations.
func TestCircle_OutOfRangePanics(t *testing.T) {
	r := circles.NewRegistry(0, 0)
	assert.Panics(t, func() { r.Circle(0) })
	assert.Panics(t, func() { r.Delete(-1) })
	assert.Panics(t, func() { r.Bind(-1, circles.Circle{}) })
	assert.False(t, r.Valid(circles.Handle{Index: 7}))
}

// TestMakeCircle covers regular and degenerate triangles.
func TestMakeCircle(t *testing.T) {
	c, ok := circles.MakeCircle(r2.Point{}, r2.Point{X: 2}, r2.Point{Y: 2})
	require.True(t, ok)
	assert.InDelta(t, 1, c.Center.X, 1e-12)
	assert.InDelta(t, 1, c.Center.Y, 1e-12)
	assert.InDelta(t, math.Sqrt2, c.Radius, 1e-12)

	// vertex order does not matter
	c2, ok := circles.MakeCircle(r2.Point{Y: 2}, r2.Point{X: 2}, r2.Point{})
	require.True(t, ok)
	assert.InDelta(t, c.Radius, c2.Radius, 1e-12)

	_, ok = circles.MakeCircle(r2.Point{}, r2.Point{X: 1, Y: 1}, r2.Point{X: 2, Y: 2})
	assert.False(t, ok)
	_, ok = circles.MakeCircle(r2.Point{X: 1}, r2.Point{X: 1}, r2.Point{X: 1})
	assert.False(t, ok)
}

// TestCircle_Bound returns the disk's box.
func TestCircle_Bound(t *testing.T) {
	b := circles.Circle{Center: r2.Point{X: 1, Y: 2}, Radius: 0.5}.Bound()
	assert.InDelta(t, 0.5, b.X.Lo, 1e-15)
	assert.InDelta(t, 1.5, b.X.Hi, 1e-15)
	assert.InDelta(t, 1.5, b.Y.Lo, 1e-15)
	assert.InDelta(t, 2.5, b.Y.Hi, 1e-15)
}
