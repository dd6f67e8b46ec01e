package delaunay

import "errors"

var (
	// ErrTooFewPoints is returned when fewer than 3 points are given.
	ErrTooFewPoints = errors.New("delaunay: at least 3 points are required")

	// ErrDegenerateBounds is returned when the points span no area.
	ErrDegenerateBounds = errors.New("delaunay: points are collinear or span a degenerate box")
)
