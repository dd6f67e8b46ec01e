// SPDX-License-Identifier: MIT

package config

import "errors"

// Every message is prefixed with "config: ..." so it can be grepped in logs.
// Validate wraps these with the offending field name; match with errors.Is.
var (
	// ErrBadDeflection is returned when a linear deflection is not finite and > 0.
	ErrBadDeflection = errors.New("config: deflection must be finite and > 0")

	// ErrBadAngle is returned when an angular deflection is outside (0, π].
	ErrBadAngle = errors.New("config: angular deflection must be in (0, pi]")

	// ErrBadMinSize is returned when MinSize is negative or not finite.
	ErrBadMinSize = errors.New("config: min size must be finite and >= 0")

	// ErrBadRefinement is returned when a refinement limit is negative.
	ErrBadRefinement = errors.New("config: refinement limits must be >= 0")

	// ErrBadExtent is returned when MaxScaledExtent is not finite and > 0.
	ErrBadExtent = errors.New("config: max scaled extent must be finite and > 0")

	// ErrBadNodeLimit is returned when MaxNodes is not > 0.
	ErrBadNodeLimit = errors.New("config: node limit must be > 0")
)
