// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults (single source of truth). Default() MUST mirror these.
const (
	// DefaultDeflection is the 3D chordal tolerance.
	DefaultDeflection = 0.001

	// DefaultAngle is the angular deflection in radians (0.5 rad ≈ 28.6°).
	DefaultAngle = 0.5

	// DefaultMinSize of 0 means "derive from deflection" (deflection / 10).
	DefaultMinSize = 0.0

	// DefaultInParallel meshes independent faces concurrently.
	DefaultInParallel = false

	// DefaultControlSurfaceDeflection enables interior refinement passes.
	DefaultControlSurfaceDeflection = true

	// DefaultMaxRefinementPasses bounds deflection-control iterations per face.
	DefaultMaxRefinementPasses = 8

	// DefaultMaxSplitDepth bounds recursive interval splitting in the
	// B-spline node generators.
	DefaultMaxSplitDepth = 6

	// DefaultMaxScaledExtent caps the face-basis extent (≈ number of unit
	// cells) along one direction.
	DefaultMaxScaledExtent = 1e6

	// DefaultMaxNodes caps the nodes of one face, seeding and refinement
	// together.
	DefaultMaxNodes = 1 << 18
)

// Parameters is the flat configuration of one meshing pass. It is read-only
// once handed to the mesher and may be shared between goroutines.
type Parameters struct {
	// Deflection is the maximum 3D distance between surface and mesh.
	Deflection float64 `yaml:"deflection"`

	// Angle is the maximum angular deviation (radians) between adjacent
	// facets and the surface normal.
	Angle float64 `yaml:"angular_deflection"`

	// DeflectionInterior and AngleInterior override Deflection and Angle for
	// interior nodes. Zero means "same as boundary".
	DeflectionInterior float64 `yaml:"deflection_interior,omitempty"`
	AngleInterior      float64 `yaml:"angular_deflection_interior,omitempty"`

	// MinSize is the smallest 3D element edge the refinement may create.
	MinSize float64 `yaml:"min_size"`

	// InParallel meshes independent faces on separate goroutines.
	InParallel bool `yaml:"in_parallel"`

	// ControlSurfaceDeflection enables deflection-driven interior refinement.
	ControlSurfaceDeflection bool `yaml:"control_surface_deflection"`

	// MaxRefinementPasses bounds the number of refinement passes per face.
	MaxRefinementPasses int `yaml:"max_refinement_passes"`

	// MaxSplitDepth bounds recursive interval splitting for B-spline nodes.
	MaxSplitDepth int `yaml:"max_split_depth"`

	// MaxScaledExtent caps the per-direction extent of the face basis.
	MaxScaledExtent float64 `yaml:"max_scaled_extent"`

	// MaxNodes caps the interior seed nodes of one face; the grids are
	// coarsened to stay below it. Refinement stops at the same count.
	MaxNodes int `yaml:"max_nodes"`
}

// Default returns the documented defaults.
func Default() Parameters {
	return Parameters{
		Deflection:               DefaultDeflection,
		Angle:                    DefaultAngle,
		MinSize:                  DefaultMinSize,
		InParallel:               DefaultInParallel,
		ControlSurfaceDeflection: DefaultControlSurfaceDeflection,
		MaxRefinementPasses:      DefaultMaxRefinementPasses,
		MaxSplitDepth:            DefaultMaxSplitDepth,
		MaxScaledExtent:          DefaultMaxScaledExtent,
		MaxNodes:                 DefaultMaxNodes,
	}
}

// New returns Default() with opts applied in order.
func New(opts ...Option) Parameters {
	p := Default()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// InteriorDeflection returns the deflection applied to interior nodes.
func (p Parameters) InteriorDeflection() float64 {
	if p.DeflectionInterior > 0 {
		return p.DeflectionInterior
	}
	return p.Deflection
}

// InteriorAngle returns the angular deflection applied to interior nodes.
func (p Parameters) InteriorAngle() float64 {
	if p.AngleInterior > 0 {
		return p.AngleInterior
	}
	return p.Angle
}

// EffectiveMinSize returns MinSize, or Deflection/10 when MinSize is 0.
func (p Parameters) EffectiveMinSize() float64 {
	if p.MinSize > 0 {
		return p.MinSize
	}
	return p.Deflection / 10
}

// Load decodes YAML parameters from r on top of Default(). Unknown keys are
// rejected. The result is validated.
func Load(r io.Reader) (Parameters, error) {
	p := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return Parameters{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// LoadFile reads and decodes the YAML file at path.
func LoadFile(path string) (Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Marshal encodes p as YAML.
func (p Parameters) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
