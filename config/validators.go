// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"math"
)

// validatorErrorf wraps a sentinel with the name of the offending field.
func validatorErrorf(field string, err error) error {
	return fmt.Errorf("%s: %w", field, err)
}

// Validate checks every field in a fixed order (deflection → angle → sizes →
// limits) and returns the first violation, wrapped with the field name.
func (p Parameters) Validate() error {
	if !finite(p.Deflection) || p.Deflection <= 0 {
		return validatorErrorf("Deflection", ErrBadDeflection)
	}
	if !finite(p.DeflectionInterior) || p.DeflectionInterior < 0 {
		return validatorErrorf("DeflectionInterior", ErrBadDeflection)
	}
	if !finite(p.Angle) || p.Angle <= 0 || p.Angle > math.Pi {
		return validatorErrorf("Angle", ErrBadAngle)
	}
	if !finite(p.AngleInterior) || p.AngleInterior < 0 || p.AngleInterior > math.Pi {
		return validatorErrorf("AngleInterior", ErrBadAngle)
	}
	if !finite(p.MinSize) || p.MinSize < 0 {
		return validatorErrorf("MinSize", ErrBadMinSize)
	}
	if p.MaxRefinementPasses < 0 {
		return validatorErrorf("MaxRefinementPasses", ErrBadRefinement)
	}
	if p.MaxSplitDepth < 0 {
		return validatorErrorf("MaxSplitDepth", ErrBadRefinement)
	}
	if !finite(p.MaxScaledExtent) || p.MaxScaledExtent <= 0 {
		return validatorErrorf("MaxScaledExtent", ErrBadExtent)
	}
	if p.MaxNodes <= 0 {
		return validatorErrorf("MaxNodes", ErrBadNodeLimit)
	}
	return nil
}
