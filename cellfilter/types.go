// SPDX-License-Identifier: MIT

package cellfilter

import "github.com/golang/geo/r2"

// Verdict is the decision of an Inspector about one stored entry.
type Verdict int

const (
	// Keep leaves the entry in the index for future queries.
	Keep Verdict = iota
	// Purge drops the entry permanently.
	Purge
)

// String returns "keep" or "purge".
func (v Verdict) String() string {
	if v == Purge {
		return "purge"
	}
	return "keep"
}

// Inspector receives the candidate entries of a query.
type Inspector[T any] interface {
	Inspect(value T) Verdict
}

// InspectorFunc adapts a plain function to the Inspector interface.
type InspectorFunc[T any] func(value T) Verdict

// Inspect calls f(value).
func (f InspectorFunc[T]) Inspect(value T) Verdict { return f(value) }

// CompactRatio is the tombstone share of stored entries above which an
// inspection triggers Compact.
const CompactRatio = 0.5

// compactMin avoids compacting tiny filters over and over.
const compactMin = 64

// maxCellsPerAxis bounds the grid allocation for pathological cell sizes.
const maxCellsPerAxis = 1 << 11

// entry is one stored value with its bounding box.
type entry[T any] struct {
	value T
	box   r2.Rect
	dead  bool
	visit uint32 // last InspectRange epoch that reached this entry
}

// Filter is a dense uniform-grid spatial index over Bounds.
// Width×Height cells of SizeX×SizeY; cell (x,y) is stored row-major at
// y*Width + x. The zero value is not usable; call New or Reset.
type Filter[T any] struct {
	bounds       r2.Rect
	sizeX, sizeY float64
	width        int
	height       int

	entries []entry[T]
	cells   [][]int32

	dead  int
	epoch uint32
}

// Reject reports whether a stored box cannot possibly match a query box.
// It is the cheap pre-filter applied before an Inspector sees an entry.
func Reject(stored, query r2.Rect) bool {
	return !stored.Intersects(query)
}
