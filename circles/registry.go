package circles

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/katalvlaran/lvmesh/cellfilter"
)

// slot is one arena cell.
type slot struct {
	circle Circle
	gen    uint32
	free   bool   // on the free list
	shot   uint32 // query epoch that last appended this slot
}

// Registry is an arena of circles with a conflict query against one point
// at a time. It is not safe for concurrent use.
type Registry struct {
	tol2  float64
	slots []slot
	free  []int

	point r2.Point
	epoch uint32
	shot  []int
}

// NewRegistry returns an empty registry. tolerance is squared once here;
// reserved preallocates slot capacity.
func NewRegistry(tolerance float64, reserved int) *Registry {
	if reserved < 0 {
		reserved = 0
	}
	return &Registry{
		tol2:  tolerance * tolerance,
		slots: make([]slot, 0, reserved),
		epoch: 1,
	}
}

// Tolerance2 returns the squared conflict tolerance.
func (r *Registry) Tolerance2() float64 { return r.tol2 }

// Len returns the number of slots, purged ones included.
func (r *Registry) Len() int { return len(r.slots) }

// checkIndex panics on an out-of-range slot: a contract violation.
func (r *Registry) checkIndex(index int) {
	if index < 0 || index >= len(r.slots) {
		panic(fmt.Sprintf("circles: slot %d out of range [0,%d)", index, len(r.slots)))
	}
}

// grow extends the arena so that index is addressable. Slots created along
// the way are purged and offered to Add.
func (r *Registry) grow(index int) {
	for len(r.slots) <= index {
		r.slots = append(r.slots, slot{circle: Circle{Radius: -1}, free: true})
		r.free = append(r.free, len(r.slots)-1)
	}
}

// Bind stores c at slot index, overwriting any previous occupant, and
// returns a fresh handle. Handles issued for the old occupant become stale.
func (r *Registry) Bind(index int, c Circle) Handle {
	if index < 0 {
		panic(fmt.Sprintf("circles: negative slot %d", index))
	}
	r.grow(index)
	s := &r.slots[index]
	s.circle = c
	s.gen++
	s.free = false
	return Handle{Index: index, Gen: s.gen}
}

// Add stores c in a reclaimed slot when one is available, otherwise in a
// new slot at the end of the arena. Amortized O(1).
func (r *Registry) Add(c Circle) Handle {
	for len(r.free) > 0 {
		i := r.free[len(r.free)-1]
		r.free = r.free[:len(r.free)-1]
		if r.slots[i].free { // skip slots rebound explicitly since Delete
			return r.Bind(i, c)
		}
	}
	return r.Bind(len(r.slots), c)
}

// Delete purges the circle at index. The slot is offered to Add once, no
// matter how often it is deleted.
func (r *Registry) Delete(index int) {
	r.checkIndex(index)
	s := &r.slots[index]
	s.circle.Radius = -1
	if !s.free {
		s.free = true
		r.free = append(r.free, index)
	}
}

// Circle gives mutable access to the circle at index. The pointer is
// invalidated by the next Bind or Add that grows the arena. Under a Tool,
// follow an edit with Tool.Update.
func (r *Registry) Circle(index int) *Circle {
	r.checkIndex(index)
	return &r.slots[index].circle
}

// Valid reports whether h still refers to a live circle.
func (r *Registry) Valid(h Handle) bool {
	if h.Index < 0 || h.Index >= len(r.slots) {
		return false
	}
	s := &r.slots[h.Index]
	return s.gen == h.Gen && !s.circle.Purged()
}

// SetPoint sets the query point for the following Inspect calls and clears
// the shot list.
func (r *Registry) SetPoint(p r2.Point) {
	r.point = p
	r.shot = r.shot[:0]
	r.epoch++
	if r.epoch == 0 {
		for i := range r.slots {
			r.slots[i].shot = 0
		}
		r.epoch = 1
	}
}

// Point returns the current query point.
func (r *Registry) Point() r2.Point { return r.point }

// Inspect checks the circle referenced by h against the query point.
// Stale handles and purged circles yield Purge; every live circle yields
// Keep and is appended to the shot list, at most once per SetPoint, when
// |p-c|² - r² ≤ tol².
func (r *Registry) Inspect(h Handle) cellfilter.Verdict {
	r.checkIndex(h.Index)
	s := &r.slots[h.Index]
	if s.gen != h.Gen || s.circle.Purged() {
		return cellfilter.Purge
	}
	d := r.point.Sub(s.circle.Center)
	if d.Dot(d)-s.circle.Radius*s.circle.Radius <= r.tol2 && s.shot != r.epoch {
		s.shot = r.epoch
		r.shot = append(r.shot, h.Index)
	}
	return cellfilter.Keep
}

// ShotCircles returns the slots collected since the last SetPoint. The
// slice is reused by the next SetPoint.
func (r *Registry) ShotCircles() []int { return r.shot }
