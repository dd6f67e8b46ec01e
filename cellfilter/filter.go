// SPDX-License-Identifier: MIT

package cellfilter

import (
	"math"

	"github.com/golang/geo/r2"
)

// New returns an empty filter over bounds with cells of sizeX×sizeY.
// Non-positive or non-finite sizes collapse the corresponding axis to a
// single cell. Complexity: O(W×H).
func New[T any](bounds r2.Rect, sizeX, sizeY float64) *Filter[T] {
	f := &Filter[T]{}
	f.Reset(bounds, sizeX, sizeY)
	return f
}

// Reset drops every entry and re-grids the filter.
func (f *Filter[T]) Reset(bounds r2.Rect, sizeX, sizeY float64) {
	f.bounds = bounds
	f.width, f.sizeX = axisCells(bounds.X.Length(), sizeX)
	f.height, f.sizeY = axisCells(bounds.Y.Length(), sizeY)
	f.entries = f.entries[:0]
	f.cells = make([][]int32, f.width*f.height)
	f.dead = 0
	f.epoch = 0
}

// axisCells returns the cell count along one axis and the effective size.
func axisCells(length, size float64) (int, float64) {
	if !(length > 0) || math.IsInf(length, 0) {
		return 1, math.Inf(1)
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return 1, length
	}
	n := math.Ceil(length / size)
	if n > maxCellsPerAxis {
		n = maxCellsPerAxis
		size = length / n
	}
	if n < 1 {
		n = 1
	}
	return int(n), size
}

// Bounds returns the rectangle covered by the grid.
func (f *Filter[T]) Bounds() r2.Rect { return f.bounds }

// Cells returns the grid dimensions.
func (f *Filter[T]) Cells() (width, height int) { return f.width, f.height }

// CellSize returns the effective cell size along each axis.
func (f *Filter[T]) CellSize() (x, y float64) { return f.sizeX, f.sizeY }

// Len returns the number of live (non-tombstoned) entries.
func (f *Filter[T]) Len() int { return len(f.entries) - f.dead }

// Tombstones returns the number of purged entries awaiting compaction.
func (f *Filter[T]) Tombstones() int { return f.dead }

// InBounds reports whether (x,y) is a valid cell coordinate. Complexity: O(1).
func (f *Filter[T]) InBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// index maps (x,y) to a row-major index: y*Width + x.
func (f *Filter[T]) index(x, y int) int {
	return y*f.width + x
}

// Coordinate converts a row-major index back to (x,y).
func (f *Filter[T]) Coordinate(idx int) (x, y int) {
	return idx % f.width, idx / f.width
}

// CellOf returns the cell containing p; points outside Bounds are clamped
// to the border cells.
func (f *Filter[T]) CellOf(p r2.Point) (x, y int) {
	return clampCell(p.X, f.bounds.X.Lo, f.sizeX, f.width),
		clampCell(p.Y, f.bounds.Y.Lo, f.sizeY, f.height)
}

func clampCell(v, lo, size float64, n int) int {
	c := math.Floor((v - lo) / size)
	if !(c >= 0) { // also catches NaN
		return 0
	}
	if c >= float64(n) {
		return n - 1
	}
	return int(c)
}

// Add stores value with its bounding box. The box is clamped to Bounds;
// an empty clamped box stores nothing and Add returns false.
// Complexity: O(k), k = overlapped cells.
func (f *Filter[T]) Add(value T, box r2.Rect) bool {
	clipped := box.Intersection(f.bounds)
	if clipped.IsEmpty() {
		return false
	}
	id := int32(len(f.entries))
	f.entries = append(f.entries, entry[T]{value: value, box: box})

	x0, y0 := f.CellOf(clipped.Lo())
	x1, y1 := f.CellOf(clipped.Hi())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			i := f.index(x, y)
			f.cells[i] = append(f.cells[i], id)
		}
	}
	return true
}

// Inspect visits the live entries listed in the cell containing p whose
// box contains p. Purged entries are tombstoned, never removed mid-iteration.
func (f *Filter[T]) Inspect(p r2.Point, in Inspector[T]) {
	x, y := f.CellOf(p)
	query := r2.RectFromPoints(p)
	ids := f.cells[f.index(x, y)]
	for _, id := range ids {
		e := &f.entries[id]
		if e.dead || Reject(e.box, query) {
			continue
		}
		if in.Inspect(e.value) == Purge {
			f.tombstone(id)
		}
	}
	f.maybeCompact()
}

// InspectRange visits every live entry whose box intersects query, once,
// across all cells overlapping query.
func (f *Filter[T]) InspectRange(query r2.Rect, in Inspector[T]) {
	clipped := query.Intersection(f.bounds)
	if clipped.IsEmpty() {
		return
	}
	f.epoch++
	if f.epoch == 0 {
		// wrapped: clear stale stamps so no entry is wrongly skipped
		for i := range f.entries {
			f.entries[i].visit = 0
		}
		f.epoch = 1
	}
	x0, y0 := f.CellOf(clipped.Lo())
	x1, y1 := f.CellOf(clipped.Hi())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ids := f.cells[f.index(x, y)]
			for _, id := range ids {
				e := &f.entries[id]
				if e.dead || e.visit == f.epoch {
					continue
				}
				e.visit = f.epoch
				if Reject(e.box, query) {
					continue
				}
				if in.Inspect(e.value) == Purge {
					f.tombstone(id)
				}
			}
		}
	}
	f.maybeCompact()
}

func (f *Filter[T]) tombstone(id int32) {
	e := &f.entries[id]
	if !e.dead {
		e.dead = true
		f.dead++
	}
}

func (f *Filter[T]) maybeCompact() {
	if f.dead >= compactMin && float64(f.dead) > CompactRatio*float64(len(f.entries)) {
		f.Compact()
	}
}

// Compact physically removes tombstoned entries and renumbers the rest.
// It must not be called from inside an Inspector. Complexity: O(W×H + N).
func (f *Filter[T]) Compact() {
	if f.dead == 0 {
		return
	}
	remap := make([]int32, len(f.entries))
	live := f.entries[:0]
	for i, e := range f.entries {
		if e.dead {
			remap[i] = -1
			continue
		}
		remap[i] = int32(len(live))
		live = append(live, e)
	}
	// clear the tail so dropped values can be collected
	var zero entry[T]
	for i := len(live); i < len(f.entries); i++ {
		f.entries[i] = zero
	}
	f.entries = live

	for c, ids := range f.cells {
		kept := ids[:0]
		for _, id := range ids {
			if nid := remap[id]; nid >= 0 {
				kept = append(kept, nid)
			}
		}
		f.cells[c] = kept
	}
	f.dead = 0
}

// Values returns the live values in insertion order.
func (f *Filter[T]) Values() []T {
	out := make([]T, 0, f.Len())
	for _, e := range f.entries {
		if !e.dead {
			out = append(out, e.value)
		}
	}
	return out
}
