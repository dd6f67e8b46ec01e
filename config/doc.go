// SPDX-License-Identifier: MIT

// Package config holds the flat set of named options consumed by the meshing
// core: deflection, angular deflection, minimal element size and the
// parallel-mode flag, plus a few refinement limits.
//
// What:
//
//   - Parameters: plain struct, safe to share read-only between goroutines.
//   - Default(): the documented defaults (single source of truth).
//   - New(opts ...Option): functional construction; Option constructors panic
//     on nonsensical values (programmer error).
//   - Validate(): returns wrapped sentinel errors for user-supplied values.
//   - Load / LoadFile: strict YAML decoding (unknown keys are rejected).
//
// Errors:
//
//   - ErrBadDeflection - deflection is not finite and positive.
//   - ErrBadAngle      - angular deflection is not in (0, π].
//   - ErrBadMinSize    - min size is negative or not finite.
//   - ErrBadRefinement - refinement limits are negative.
//   - ErrBadExtent     - scaled extent ceiling is not positive.
package config
