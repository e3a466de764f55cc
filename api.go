package fractal

import "context"

// Renderer renders parameter sets on a remote pool.
// Passes are given in the parameter file syntax and rendered in order; the
// result holds one raster per pass.
type Renderer interface {
	Render(ctx context.Context, threads int, passes []PassRequest) ([]Raster, error)
}
