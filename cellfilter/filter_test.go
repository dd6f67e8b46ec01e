// SPDX-License-Identifier: MIT

package cellfilter_test

import (
	"sort"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/katalvlaran/lvmesh/cellfilter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x0, y0, x1, y1 float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: x0, Y: y0}, r2.Point{X: x1, Y: y1})
}

// collect returns an inspector that records every value it sees and answers v.
func collect(seen *[]int, v cellfilter.Verdict) cellfilter.InspectorFunc[int] {
	return func(value int) cellfilter.Verdict {
		*seen = append(*seen, value)
		return v
	}
}

// TestNew_Grid checks grid dimensions derived from bounds and cell sizes.
func TestNew_Grid(t *testing.T) {
	f := cellfilter.New[int](rect(0, 0, 10, 4), 1, 2)
	w, h := f.Cells()
	assert.Equal(t, 10, w)
	assert.Equal(t, 2, h)

	x, y := f.CellOf(r2.Point{X: 3.5, Y: 3.9})
	assert.Equal(t, 3, x)
	assert.Equal(t, 1, y)

	// points outside bounds clamp to border cells
	x, y = f.CellOf(r2.Point{X: -5, Y: 100})
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)

	assert.True(t, f.InBounds(9, 1))
	assert.False(t, f.InBounds(10, 0))
	assert.False(t, f.InBounds(0, -1))

	cx, cy := f.Coordinate(13)
	assert.Equal(t, 3, cx)
	assert.Equal(t, 1, cy)
}

// TestNew_DegenerateSizes collapses axes with unusable sizes to one cell.
func TestNew_DegenerateSizes(t *testing.T) {
	f := cellfilter.New[int](rect(0, 0, 10, 10), 0, -1)
	w, h := f.Cells()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	f = cellfilter.New[int](rect(0, 0, 1, 1), 1e-9, 1e-9)
	w, h = f.Cells()
	assert.LessOrEqual(t, w, 1<<11)
	assert.LessOrEqual(t, h, 1<<11)
}

// TestInspect_PointQuery returns only entries whose box contains the point.
func TestInspect_PointQuery(t *testing.T) {
	f := cellfilter.New[int](rect(0, 0, 10, 10), 2, 2)
	require.True(t, f.Add(1, rect(0, 0, 3, 3)))
	require.True(t, f.Add(2, rect(2.5, 2.5, 5, 5)))
	require.True(t, f.Add(3, rect(7, 7, 9, 9)))

	var seen []int
	f.Inspect(r2.Point{X: 2.7, Y: 2.7}, collect(&seen, cellfilter.Keep))
	sort.Ints(seen)
	assert.Equal(t, []int{1, 2}, seen)

	seen = nil
	f.Inspect(r2.Point{X: 1, Y: 1}, collect(&seen, cellfilter.Keep))
	assert.Equal(t, []int{1}, seen)

	seen = nil
	f.Inspect(r2.Point{X: 6, Y: 1}, collect(&seen, cellfilter.Keep))
	assert.Empty(t, seen)
}

// TestAdd_OutsideBounds stores nothing for boxes that miss the grid.
func TestAdd_OutsideBounds(t *testing.T) {
	f := cellfilter.New[int](rect(0, 0, 1, 1), 0.5, 0.5)
	assert.False(t, f.Add(1, rect(2, 2, 3, 3)))
	assert.Equal(t, 0, f.Len())

	// partially outside boxes are clamped, and still found near the border
	assert.True(t, f.Add(2, rect(-1, -1, 0.2, 0.2)))
	var seen []int
	f.Inspect(r2.Point{X: 0.1, Y: 0.1}, collect(&seen, cellfilter.Keep))
	assert.Equal(t, []int{2}, seen)
}

// TestInspect_Purge tombstones entries so later queries skip them.
func TestInspect_Purge(t *testing.T) {
	f := cellfilter.New[int](rect(0, 0, 4, 4), 1, 1)
	for i := 0; i < 5; i++ {
		f.Add(i, rect(0, 0, 4, 4))
	}

	// purge even values while iterating the same cell
	f.Inspect(r2.Point{X: 1, Y: 1}, cellfilter.InspectorFunc[int](func(v int) cellfilter.Verdict {
		if v%2 == 0 {
			return cellfilter.Purge
		}
		return cellfilter.Keep
	}))
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, 3, f.Tombstones())

	// purged entries are gone from every cell they covered
	var seen []int
	f.Inspect(r2.Point{X: 3.5, Y: 3.5}, collect(&seen, cellfilter.Keep))
	sort.Ints(seen)
	assert.Equal(t, []int{1, 3}, seen)

	// kept entries remain queryable repeatedly
	seen = nil
	f.Inspect(r2.Point{X: 0.5, Y: 3.5}, collect(&seen, cellfilter.Keep))
	assert.Len(t, seen, 2)
}

// TestInspectRange_Dedup visits multi-cell entries exactly once.
func TestInspectRange_Dedup(t *testing.T) {
	f := cellfilter.New[int](rect(0, 0, 10, 10), 1, 1)
	f.Add(7, rect(1, 1, 8, 8))
	f.Add(8, rect(9, 9, 10, 10))

	var seen []int
	f.InspectRange(rect(0, 0, 5, 5), collect(&seen, cellfilter.Keep))
	assert.Equal(t, []int{7}, seen)

	seen = nil
	f.InspectRange(rect(0, 0, 10, 10), collect(&seen, cellfilter.Keep))
	sort.Ints(seen)
	assert.Equal(t, []int{7, 8}, seen)

	// a second range query sees the same entries again
	seen = nil
	f.InspectRange(rect(0, 0, 10, 10), collect(&seen, cellfilter.Purge))
	assert.Len(t, seen, 2)
	assert.Equal(t, 0, f.Len())
}

// TestCompact_Automatic compacts once tombstones dominate the store.
func TestCompact_Automatic(t *testing.T) {
	f := cellfilter.New[int](rect(0, 0, 1, 1), 1, 1)
	const n = 200
	for i := 0; i < n; i++ {
		f.Add(i, rect(0, 0, 1, 1))
	}
	// purge everything below 150: above CompactRatio, above the minimum
	f.Inspect(r2.Point{X: 0.5, Y: 0.5}, cellfilter.InspectorFunc[int](func(v int) cellfilter.Verdict {
		if v < 150 {
			return cellfilter.Purge
		}
		return cellfilter.Keep
	}))
	assert.Equal(t, 0, f.Tombstones())
	assert.Equal(t, 50, f.Len())

	values := f.Values()
	require.Len(t, values, 50)
	assert.Equal(t, 150, values[0])
	assert.Equal(t, 199, values[49])

	// the renumbered index still answers queries
	var seen []int
	f.Inspect(r2.Point{X: 0.2, Y: 0.2}, collect(&seen, cellfilter.Keep))
	assert.Len(t, seen, 50)
}

// TestCompact_Manual keeps small tombstone counts until asked.
func TestCompact_Manual(t *testing.T) {
	f := cellfilter.New[string](rect(0, 0, 2, 2), 1, 1)
	f.Add("a", rect(0, 0, 2, 2))
	f.Add("b", rect(0, 0, 0.5, 0.5))
	f.InspectRange(rect(0, 0, 2, 2), cellfilter.InspectorFunc[string](func(v string) cellfilter.Verdict {
		if v == "a" {
			return cellfilter.Purge
		}
		return cellfilter.Keep
	}))
	assert.Equal(t, 1, f.Tombstones())

	f.Compact()
	assert.Equal(t, 0, f.Tombstones())
	assert.Equal(t, []string{"b"}, f.Values())
}

// TestReset drops entries and re-grids.
func TestReset(t *testing.T) {
	f := cellfilter.New[int](rect(0, 0, 1, 1), 0.5, 0.5)
	f.Add(1, rect(0, 0, 1, 1))
	f.Reset(rect(0, 0, 8, 8), 2, 4)
	assert.Equal(t, 0, f.Len())
	w, h := f.Cells()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, rect(0, 0, 8, 8), f.Bounds())
}

// TestReject checks the box pre-filter.
func TestReject(t *testing.T) {
	assert.False(t, cellfilter.Reject(rect(0, 0, 1, 1), rect(0.5, 0.5, 2, 2)))
	assert.False(t, cellfilter.Reject(rect(0, 0, 1, 1), r2.RectFromPoints(r2.Point{X: 1, Y: 1})))
	assert.True(t, cellfilter.Reject(rect(0, 0, 1, 1), rect(1.1, 0, 2, 1)))
}

// TestVerdict_String covers the verdict names.
func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "keep", cellfilter.Keep.String())
	assert.Equal(t, "purge", cellfilter.Purge.String())
}
