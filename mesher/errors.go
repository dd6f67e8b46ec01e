package mesher

import "errors"

var (
	// ErrNilSurface is returned for a face without a surface.
	ErrNilSurface = errors.New("mesher: face has no surface")

	// ErrDegenerateDomain is returned when the face's parametric domain has
	// no area after range adjustment, or cannot be triangulated.
	ErrDegenerateDomain = errors.New("mesher: degenerate parametric domain")

	// ErrContractViolation wraps a panic recovered while meshing one face.
	ErrContractViolation = errors.New("mesher: contract violation")
)
