// SPDX-License-Identifier: MIT

package config_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lvmesh/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault_Valid ensures the documented defaults pass validation.
func TestDefault_Valid(t *testing.T) {
	p := config.Default()
	require.NoError(t, p.Validate())
	assert.Equal(t, config.DefaultDeflection, p.Deflection)
	assert.Equal(t, config.DefaultAngle, p.Angle)
	assert.Equal(t, config.DefaultMaxRefinementPasses, p.MaxRefinementPasses)
	assert.InDelta(t, config.DefaultDeflection/10, p.EffectiveMinSize(), 1e-15)
}

// TestNew_Options applies every option and checks the resulting fields.
func TestNew_Options(t *testing.T) {
	p := config.New(
		config.WithDeflection(0.01),
		config.WithAngle(0.2),
		config.WithInterior(0.02, 0.3),
		config.WithMinSize(0.005),
		config.WithParallel(true),
		config.WithSurfaceDeflectionControl(false),
		config.WithMaxRefinementPasses(2),
		config.WithMaxSplitDepth(3),
		config.WithMaxScaledExtent(50),
		config.WithMaxNodes(1000),
	)
	require.NoError(t, p.Validate())
	assert.Equal(t, 0.01, p.Deflection)
	assert.Equal(t, 0.2, p.Angle)
	assert.Equal(t, 0.02, p.InteriorDeflection())
	assert.Equal(t, 0.3, p.InteriorAngle())
	assert.Equal(t, 0.005, p.EffectiveMinSize())
	assert.True(t, p.InParallel)
	assert.False(t, p.ControlSurfaceDeflection)
	assert.Equal(t, 2, p.MaxRefinementPasses)
	assert.Equal(t, 3, p.MaxSplitDepth)
	assert.Equal(t, 50.0, p.MaxScaledExtent)
	assert.Equal(t, 1000, p.MaxNodes)
}

// TestOptions_PanicOnNonsense verifies option constructors reject programmer errors.
func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { config.WithDeflection(0) })
	assert.Panics(t, func() { config.WithDeflection(math.NaN()) })
	assert.Panics(t, func() { config.WithAngle(4) })
	assert.Panics(t, func() { config.WithMinSize(-1) })
	assert.Panics(t, func() { config.WithMaxRefinementPasses(-1) })
	assert.Panics(t, func() { config.WithMaxSplitDepth(-1) })
	assert.Panics(t, func() { config.WithInterior(1, 0) })
	assert.Panics(t, func() { config.WithMaxScaledExtent(0) })
	assert.Panics(t, func() { config.WithMaxNodes(0) })
}

// TestValidate_Errors checks every sentinel is reachable through Validate.
func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Parameters)
		err    error
	}{
		{"ZeroDeflection", func(p *config.Parameters) { p.Deflection = 0 }, config.ErrBadDeflection},
		{"InfDeflection", func(p *config.Parameters) { p.Deflection = math.Inf(1) }, config.ErrBadDeflection},
		{"NegInterior", func(p *config.Parameters) { p.DeflectionInterior = -1 }, config.ErrBadDeflection},
		{"BigAngle", func(p *config.Parameters) { p.Angle = 7 }, config.ErrBadAngle},
		{"NegAngleInterior", func(p *config.Parameters) { p.AngleInterior = -0.1 }, config.ErrBadAngle},
		{"NegMinSize", func(p *config.Parameters) { p.MinSize = -0.1 }, config.ErrBadMinSize},
		{"NegPasses", func(p *config.Parameters) { p.MaxRefinementPasses = -1 }, config.ErrBadRefinement},
		{"NegDepth", func(p *config.Parameters) { p.MaxSplitDepth = -1 }, config.ErrBadRefinement},
		{"ZeroExtent", func(p *config.Parameters) { p.MaxScaledExtent = 0 }, config.ErrBadExtent},
		{"ZeroNodes", func(p *config.Parameters) { p.MaxNodes = 0 }, config.ErrBadNodeLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := config.Default()
			tc.mutate(&p)
			assert.ErrorIs(t, p.Validate(), tc.err)
		})
	}
}

// TestLoad_YAML decodes a partial document on top of defaults.
func TestLoad_YAML(t *testing.T) {
	doc := `
deflection: 0.05
angular_deflection: 0.3
min_size: 0.01
in_parallel: true
`
	p, err := config.Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 0.05, p.Deflection)
	assert.Equal(t, 0.3, p.Angle)
	assert.Equal(t, 0.01, p.MinSize)
	assert.True(t, p.InParallel)
	assert.Equal(t, config.DefaultMaxRefinementPasses, p.MaxRefinementPasses)
}

// TestLoad_Empty returns defaults for an empty document.
func TestLoad_Empty(t *testing.T) {
	p, err := config.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), p)
}

// TestLoad_UnknownKey rejects typos in configuration files.
func TestLoad_UnknownKey(t *testing.T) {
	_, err := config.Load(strings.NewReader("deflectoin: 0.1\n"))
	assert.Error(t, err)
}

// TestLoad_Invalid surfaces validation errors from decoded values.
func TestLoad_Invalid(t *testing.T) {
	_, err := config.Load(strings.NewReader("deflection: -1\n"))
	assert.ErrorIs(t, err, config.ErrBadDeflection)
}

// TestMarshal_RoundTrip writes parameters to a file and loads them back.
func TestMarshal_RoundTrip(t *testing.T) {
	want := config.New(config.WithDeflection(0.2), config.WithParallel(true), config.WithInterior(0.1, 0.4))
	data, err := want.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mesh.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	got, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// TestLoadFile_Missing wraps the os error.
func TestLoadFile_Missing(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
