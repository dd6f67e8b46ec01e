// SPDX-License-Identifier: MIT

// Package cellfilter implements a generic 2D spatial hash ("cell filter"):
// a dense uniform grid over a bounding rectangle whose cells list the stored
// entries whose bounding boxes overlap them.
//
// What:
//
//   - Filter[T] stores values of any type together with their r2.Rect box.
//   - Add registers an entry in every cell its (clamped) box overlaps.
//   - Inspect visits the entries of the cell containing a point;
//     InspectRange visits the entries of every cell overlapping a box.
//   - An Inspector decides per entry: Keep (entry stays queryable) or Purge
//     (entry is dropped permanently).
//
// Lazy deletion:
//
//	A Purge verdict never edits the cell being iterated. The entry is
//	tombstoned in place and skipped by every later visit; tombstones are
//	physically removed by Compact, which runs automatically once they
//	exceed CompactRatio of the stored entries. This bounds the worst-case
//	cost of a query without pruning inline.
//
// Complexity:
//
//   - Add:          O(k), k = number of cells overlapped by the box.
//   - Inspect:      O(m), m = entries listed in the visited cell.
//   - InspectRange: O(k + m) over the visited cells.
//   - Compact:      O(W×H + N).
package cellfilter
