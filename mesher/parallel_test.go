package mesher_test

import (
	"context"
	"sync"
	"testing"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
	"github.com/katalvlaran/lvmesh/config"
	"github.com/katalvlaran/lvmesh/mesher"
	"github.com/katalvlaran/lvmesh/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faces returns a mixed batch: analytic, callback, degenerate and panicking.
func faces(t *testing.T) []mesher.Face {
	t.Helper()
	cyl, err := surface.NewCylinder(surface.DefaultFrame(), 2, r1.Interval{Hi: 1})
	require.NoError(t, err)
	sph, err := surface.NewSphere(surface.DefaultFrame(), 1)
	require.NoError(t, err)
	tor, err := surface.NewTorus(surface.DefaultFrame(), 3, 1)
	require.NoError(t, err)

	return []mesher.Face{
		{Surface: surface.NewPlane(surface.DefaultFrame(), r1.Interval{Hi: 1}, r1.Interval{Hi: 1})},
		{Surface: cyl},
		{Surface: sph},
		{Surface: tor},
		{Surface: &surface.FuncSurface{
			Eval:   func(u, v float64) r3.Vector { panic("evaluation outside domain") },
			URange: r1.Interval{Hi: 1},
			VRange: r1.Interval{Hi: 1},
		}},
		{Surface: surface.NewPlane(surface.DefaultFrame(), r1.Interval{Hi: 1}, r1.Interval{Lo: 2, Hi: 2})},
		{},
	}
}

// assertBatch checks the per-face outcome of faces().
func assertBatch(t *testing.T, res []mesher.Result) {
	t.Helper()
	require.Len(t, res, 7)
	for i := 0; i < 4; i++ {
		require.NoError(t, res[i].Err, "face %d", i)
		assert.NotEmpty(t, res[i].Mesh.Triangles, "face %d", i)
	}
	assert.ErrorIs(t, res[4].Err, mesher.ErrContractViolation)
	assert.Nil(t, res[4].Mesh)
	assert.ErrorIs(t, res[5].Err, mesher.ErrDegenerateDomain)
	assert.ErrorIs(t, res[6].Err, mesher.ErrNilSurface)
}

// TestMeshFaces_Sequential isolates failures per face.
func TestMeshFaces_Sequential(t *testing.T) {
	assertBatch(t, mesher.MeshFaces(context.Background(), faces(t), coarse()))
}

// TestMeshFaces_Parallel matches the sequential result face by face.
func TestMeshFaces_Parallel(t *testing.T) {
	fs := faces(t)
	seq := mesher.MeshFaces(context.Background(), fs, coarse())

	p := coarse()
	p.InParallel = true
	par := mesher.MeshFaces(context.Background(), fs, p)
	assertBatch(t, par)
	for i := 0; i < 4; i++ {
		assert.Equal(t, seq[i].Mesh.Triangles, par[i].Mesh.Triangles, "face %d", i)
		assert.Equal(t, seq[i].Mesh.UV, par[i].Mesh.UV, "face %d", i)
	}
}

// TestMeshFaces_Canceled abandons every face once ctx is done.
func TestMeshFaces_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, parallel := range []bool{false, true} {
		p := config.New(config.WithDeflection(0.01), config.WithParallel(parallel))
		for i, r := range mesher.MeshFaces(ctx, faces(t), p) {
			assert.ErrorIs(t, r.Err, context.Canceled, "face %d", i)
			assert.Nil(t, r.Mesh)
		}
	}
}

// TestMeshFace_Concurrent shares one surface and one Parameters value
// between goroutines.
func TestMeshFace_Concurrent(t *testing.T) {
	s, err := surface.NewTorus(surface.DefaultFrame(), 3, 1)
	require.NoError(t, err)
	p := coarse()

	const workers = 8
	meshes := make([]*mesher.Mesh, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(id int) {
			defer wg.Done()
			m, err := mesher.MeshFace(mesher.Face{Surface: s}, p)
			assert.NoError(t, err)
			meshes[id] = m
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		require.NotNil(t, meshes[i])
		assert.Equal(t, len(meshes[0].Triangles), len(meshes[i].Triangles))
	}
}
