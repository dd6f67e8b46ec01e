// SPDX-License-Identifier: MIT

package config

import "math"

// Internal panic messages (no magic strings).
const (
	panicDeflection = "config: WithDeflection: deflection must be finite and > 0"
	panicAngle      = "config: WithAngle: angle must be in (0, pi]"
	panicMinSize    = "config: WithMinSize: min size must be finite and >= 0"
	panicPasses     = "config: WithMaxRefinementPasses: passes must be >= 0"
	panicDepth      = "config: WithMaxSplitDepth: depth must be >= 0"
	panicExtent     = "config: WithMaxScaledExtent: extent must be finite and > 0"
	panicNodes      = "config: WithMaxNodes: node limit must be > 0"
)

// Option mutates Parameters. Constructors panic only on nonsensical values
// (programmer error); user input should go through Load + Validate instead.
type Option func(*Parameters)

// WithDeflection sets the boundary (and default interior) deflection.
func WithDeflection(d float64) Option {
	if !finite(d) || d <= 0 {
		panic(panicDeflection)
	}
	return func(p *Parameters) { p.Deflection = d }
}

// WithAngle sets the angular deflection in radians.
func WithAngle(a float64) Option {
	if !finite(a) || a <= 0 || a > math.Pi {
		panic(panicAngle)
	}
	return func(p *Parameters) { p.Angle = a }
}

// WithInterior overrides deflection and angle for interior nodes.
func WithInterior(deflection, angle float64) Option {
	if !finite(deflection) || deflection <= 0 {
		panic(panicDeflection)
	}
	if !finite(angle) || angle <= 0 || angle > math.Pi {
		panic(panicAngle)
	}
	return func(p *Parameters) {
		p.DeflectionInterior = deflection
		p.AngleInterior = angle
	}
}

// WithMinSize sets the minimal 3D element size.
func WithMinSize(s float64) Option {
	if !finite(s) || s < 0 {
		panic(panicMinSize)
	}
	return func(p *Parameters) { p.MinSize = s }
}

// WithParallel toggles concurrent meshing of independent faces.
func WithParallel(on bool) Option {
	return func(p *Parameters) { p.InParallel = on }
}

// WithSurfaceDeflectionControl toggles interior refinement passes.
func WithSurfaceDeflectionControl(on bool) Option {
	return func(p *Parameters) { p.ControlSurfaceDeflection = on }
}

// WithMaxRefinementPasses bounds refinement passes per face.
func WithMaxRefinementPasses(n int) Option {
	if n < 0 {
		panic(panicPasses)
	}
	return func(p *Parameters) { p.MaxRefinementPasses = n }
}

// WithMaxSplitDepth bounds recursive splitting in B-spline node generation.
func WithMaxSplitDepth(n int) Option {
	if n < 0 {
		panic(panicDepth)
	}
	return func(p *Parameters) { p.MaxSplitDepth = n }
}

// WithMaxScaledExtent caps the face basis extent per direction.
func WithMaxScaledExtent(e float64) Option {
	if !finite(e) || e <= 0 {
		panic(panicExtent)
	}
	return func(p *Parameters) { p.MaxScaledExtent = e }
}

// WithMaxNodes caps the nodes generated for one face.
func WithMaxNodes(n int) Option {
	if n <= 0 {
		panic(panicNodes)
	}
	return func(p *Parameters) { p.MaxNodes = n }
}
