package delaunay_test

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/katalvlaran/lvmesh/delaunay"
)

// ExampleTriangulation_Insert splits a triangle by inserting its centroid.
func ExampleTriangulation_Insert() {
	tr, err := delaunay.New([]r2.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}}, 0, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("before:", tr.TriangleCount())

	id, ok := tr.Insert(r2.Point{X: 1, Y: 1})
	fmt.Println("inserted:", id, ok)
	fmt.Println("after:", tr.TriangleCount())
	// Output:
	// before: 1
	// inserted: 3 true
	// after: 3
}
