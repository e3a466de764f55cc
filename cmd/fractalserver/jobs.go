package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/syncx"

	fractal "github.com/marben/par_fractals"
)

const maxRequestSize = 1 << 20

var (
	errBadRequest = errors.New("bad request")
	errBusy       = errors.New("too many renders in progress")
)

// renderScheduler runs render requests, each on its own worker pool.
// All pools draw grid memory from one allocator.
type renderScheduler struct {
	maxThreads int
	maxPasses  int
	limit      syncx.Limit
	alloc      *fractal.HeapAllocator

	jobs int
	m    sync.Mutex
}

func newRenderScheduler(c Config) *renderScheduler {
	return &renderScheduler{
		maxThreads: c.MaxThreads,
		maxPasses:  c.MaxPasses,
		limit:      syncx.NewLimit(c.MaxJobs),
		alloc:      &fractal.HeapAllocator{Limit: c.MaxGridBytes},
	}
}

func (rs *renderScheduler) incActiveJobs() {
	rs.m.Lock()
	rs.jobs++
	j := rs.jobs
	rs.m.Unlock()

	logx.Infof("jobs: %d", j)
}

func (rs *renderScheduler) decActiveJobs() {
	rs.m.Lock()
	rs.jobs--
	j := rs.jobs
	rs.m.Unlock()

	logx.Infof("jobs: %d", j)
}

var _ fractal.Renderer = (*renderScheduler)(nil)

// serve reads one RenderRequest from c and streams back a header and a
// raster per pass.
func (rs *renderScheduler) serve(ctx context.Context, c *websocket.Conn) error {
	c.SetReadLimit(maxRequestSize)

	typ, msg, err := c.Read(ctx)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	if typ != websocket.MessageText {
		return fmt.Errorf("%w: request must be a text message", errBadRequest)
	}

	var req fractal.RenderRequest
	if err := sonic.Unmarshal(msg, &req); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return rs.render(req, func(_ int, name string) fractal.RasterSink {
		return &wsSink{ctx: ctx, conn: c, name: name}
	})
}

// Render serves irpc clients. The rasters are returned once every pass is
// done; errors reach the client as text only.
func (rs *renderScheduler) Render(_ context.Context, threads int, passes []fractal.PassRequest) ([]fractal.Raster, error) {
	rasters := make([]fractal.Raster, len(passes))
	err := rs.render(fractal.RenderRequest{Threads: threads, Passes: passes}, func(i int, name string) fractal.RasterSink {
		return &rasterSink{raster: &rasters[i], name: name}
	})
	if err != nil {
		logx.Errorf("irpc render: %v", err)
		return nil, err
	}
	return rasters, nil
}

// render checks req against the limits and runs it on a pool of its own.
// sink returns the sink for pass i.
func (rs *renderScheduler) render(req fractal.RenderRequest, sink func(i int, name string) fractal.RasterSink) error {
	passes, err := rs.passes(req, sink)
	if err != nil {
		return err
	}

	if !rs.limit.TryBorrow() {
		return errBusy
	}
	defer rs.limit.Return()

	rs.incActiveJobs()
	defer rs.decActiveJobs()

	return fractal.Run(fractal.Config{Threads: req.Threads, Allocator: rs.alloc}, passes...)
}

func (rs *renderScheduler) passes(req fractal.RenderRequest, sink func(i int, name string) fractal.RasterSink) ([]fractal.Pass, error) {
	if req.Threads < 1 || req.Threads > rs.maxThreads {
		return nil, fmt.Errorf("%w: threads must be in [1,%d], got %d", errBadRequest, rs.maxThreads, req.Threads)
	}
	if len(req.Passes) == 0 || len(req.Passes) > rs.maxPasses {
		return nil, fmt.Errorf("%w: between 1 and %d passes expected, got %d", errBadRequest, rs.maxPasses, len(req.Passes))
	}

	passes := make([]fractal.Pass, len(req.Passes))
	for i, p := range req.Passes {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("pass%d", i)
		}
		passes[i] = fractal.Pass{
			Name:   name,
			Source: fractal.TextSource(p.Params),
			Sink:   sink(i, name),
		}
	}
	return passes, nil
}

// wsSink sends a RasterHeader text message followed by the PGM bytes.
type wsSink struct {
	ctx  context.Context
	conn *websocket.Conn
	name string
}

func (s *wsSink) WriteRaster(_ fractal.Params, g *fractal.Grid) error {
	var buf bytes.Buffer
	if err := fractal.WritePGM(&buf, g); err != nil {
		return err
	}

	header, err := sonic.Marshal(fractal.RasterHeader{
		Name:   s.name,
		Width:  g.Width,
		Height: g.Height,
		Size:   buf.Len(),
	})
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if err := s.conn.Write(s.ctx, websocket.MessageText, header); err != nil {
		return fmt.Errorf("send header: %w", err)
	}
	if err := s.conn.Write(s.ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
		return fmt.Errorf("send raster: %w", err)
	}
	return nil
}

// rasterSink keeps the raster for the irpc response.
type rasterSink struct {
	raster *fractal.Raster
	name   string
}

func (s *rasterSink) WriteRaster(_ fractal.Params, g *fractal.Grid) error {
	var buf bytes.Buffer
	if err := fractal.WritePGM(&buf, g); err != nil {
		return err
	}
	*s.raster = fractal.Raster{Name: s.name, Width: g.Width, Height: g.Height, PGM: buf.Bytes()}
	return nil
}
