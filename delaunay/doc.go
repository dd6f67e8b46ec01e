// Package delaunay builds an incremental Delaunay triangulation of 2D points
// (Bowyer–Watson) on top of the circle tool of package circles.
//
// New encloses the points in a super triangle, then inserts them in order of
// increasing x+y. Each insertion:
//
//  1. selects the circumcircles shot by the point through the spatial index,
//  2. grows a cavity from the shot triangle that contains the point over its
//     shot neighbours,
//  3. shrinks the cavity until every boundary edge sees the point strictly on
//     its left,
//  4. deletes the cavity and fans new triangles from its boundary to the point.
//
// Triangle slots are circle slots: a triangle lives at the index of its
// circumcircle in the registry, so freed slots are reused by later triangles.
// Super triangle vertices have negative ids and are filtered out of
// Triangles.
//
// A Triangulation is single-threaded; every instance owns its tool.
package delaunay
