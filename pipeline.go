package fractal

import (
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"
)

// Observer is notified before a worker executes a phase.
// It is called concurrently from all workers.
type Observer func(worker, pass int, phase Phase)

// pipeline is the state shared by the workers of one Run.
// params, width, height and grid are written by worker 0 only, inside
// serial phases; the barrier after each phase publishes them.
type pipeline struct {
	passes   []Pass
	workers  int
	alloc    Allocator
	barrier  *Barrier
	observer Observer

	params        Params
	width, height int
	grid          *Grid
}

func newPipeline(cfg Config, passes []Pass) *pipeline {
	return &pipeline{
		passes:   passes,
		workers:  cfg.Threads,
		alloc:    cfg.Allocator,
		barrier:  NewBarrier(cfg.Threads),
		observer: cfg.Observer,
	}
}

// work walks the schedule as worker id. On failure it breaks the barrier
// so that every other worker returns as well.
func (pl *pipeline) work(id int) error {
	for pass := range pl.passes {
		for _, step := range passSteps {
			if step.Runs(id) {
				if pl.observer != nil {
					pl.observer(id, pass, step.Phase)
				}
				if err := pl.exec(id, pass, step.Phase); err != nil {
					err = fmt.Errorf("%s pass, %s: %w", pl.passes[pass].Name, step.Phase, err)
					pl.barrier.Break(err)
					return err
				}
			}
			if err := pl.barrier.Wait(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (pl *pipeline) exec(id, pass int, phase Phase) error {
	switch phase {
	case PhaseReadParams:
		p, err := pl.passes[pass].Source.ReadParams()
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		pl.params = p
		pl.width, pl.height = p.Dimensions()
		logx.Infof("%s pass: %s %dx%d, %d iterations, %d workers",
			pl.passes[pass].Name, p.Kind(), pl.width, pl.height, p.Iterations, pl.workers)

	case PhaseAllocGrid:
		g, err := allocGrid(pl.alloc, pl.width, pl.height)
		if err != nil {
			return err
		}
		pl.grid = g

	case PhaseAllocRows:
		r := Partition(id, pl.workers, pl.height)
		logx.Debugf("worker %d: rows [%d,%d)", id, r.Start, r.End)
		return pl.grid.allocRows(pl.alloc, r)

	case PhaseCompute:
		pl.compute(Partition(id, pl.workers, pl.width))

	case PhaseSerialize:
		if err := pl.passes[pass].Sink.WriteRaster(pl.params, pl.grid); err != nil {
			return err
		}
		logx.Infof("%s pass: raster written", pl.passes[pass].Name)

	case PhaseFreeRows:
		pl.grid.freeRows(pl.alloc, Partition(id, pl.workers, pl.height))

	case PhaseFreeGrid:
		pl.grid.free(pl.alloc)
		pl.grid = nil

	default:
		return fmt.Errorf("unknown phase %v", phase)
	}
	return nil
}

// compute fills the columns in cols. Sample h lands on row height-1-h so
// the top row of the raster holds the largest imaginary part.
func (pl *pipeline) compute(cols Range) {
	p, g := pl.params, pl.grid
	for w := cols.Start; w < cols.End; w++ {
		for h := 0; h < g.Height; h++ {
			g.set(w, g.Height-1-h, p.Sample(w, h))
		}
	}
}
