package fractal

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrThreads is returned for a worker count below one.
var ErrThreads = errors.New("thread count must be at least 1")

// Config configures a Run.
type Config struct {
	// Threads is the number of workers; it is not checked against the
	// number of CPUs.
	Threads int
	// Allocator provides grid memory, a plain HeapAllocator when nil.
	Allocator Allocator
	// Observer, when set, sees every phase each worker executes.
	Observer Observer
}

// Run renders passes in order with a pool of cfg.Threads workers sharing one
// barrier. It returns after every worker has exited, with the first failure.
func Run(cfg Config, passes ...Pass) error {
	if cfg.Threads < 1 {
		return fmt.Errorf("%w, got %d", ErrThreads, cfg.Threads)
	}
	if cfg.Allocator == nil {
		cfg.Allocator = &HeapAllocator{}
	}
	for i, p := range passes {
		if p.Source == nil || p.Sink == nil {
			return fmt.Errorf("pass %d (%s): missing source or sink", i, p.Name)
		}
	}

	pl := newPipeline(cfg, passes)

	var g errgroup.Group
	for id := range cfg.Threads {
		g.Go(func() error {
			return pl.work(id)
		})
	}
	err := g.Wait()
	if pl.grid != nil {
		pl.grid.release(cfg.Allocator)
		pl.grid = nil
	}
	if cause := pl.barrier.Cause(); cause != nil {
		return cause
	}
	return err
}
