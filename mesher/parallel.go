package mesher

import (
	"context"
	"fmt"
	"runtime"

	"github.com/katalvlaran/lvmesh/config"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of meshing one face.
type Result struct {
	Mesh *Mesh
	Err  error
}

// MeshFaces meshes every face and returns one Result per face, in order.
// With p.InParallel the faces run on up to GOMAXPROCS goroutines. A panic
// inside one face becomes ErrContractViolation for that face only. Faces not
// started before ctx is done carry ctx.Err().
func MeshFaces(ctx context.Context, faces []Face, p config.Parameters) []Result {
	results := make([]Result, len(faces))
	if !p.InParallel {
		for i, f := range faces {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				continue
			}
			results[i].Mesh, results[i].Err = meshFaceSafe(i, f, p)
		}
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range faces {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Mesh, results[i].Err = meshFaceSafe(i, faces[i], p)
			return nil
		})
	}
	_ = g.Wait() // per-face errors live in results
	return results
}

// meshFaceSafe runs MeshFace and turns a panic into ErrContractViolation.
func meshFaceSafe(i int, f Face, p config.Parameters) (m *Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("recovered panic while meshing face", "face", i, "panic", r)
			m, err = nil, fmt.Errorf("face %d: %w: %v", i, ErrContractViolation, r)
		}
	}()
	return MeshFace(f, p)
}
