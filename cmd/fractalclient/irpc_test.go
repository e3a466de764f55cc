package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marben/irpc"

	fractal "github.com/marben/par_fractals"
)

// fakeRenderer returns a one pixel raster per pass, or err when it is set.
type fakeRenderer struct {
	err      error
	requests chan fractal.RenderRequest
}

func (f *fakeRenderer) Render(_ context.Context, threads int, passes []fractal.PassRequest) ([]fractal.Raster, error) {
	f.requests <- fractal.RenderRequest{Threads: threads, Passes: passes}
	if f.err != nil {
		return nil, f.err
	}
	rasters := make([]fractal.Raster, len(passes))
	for i, p := range passes {
		rasters[i] = fractal.Raster{Name: p.Name, Width: 1, Height: 1, PGM: []byte(fmt.Sprintf("P2\n1 1\n255\n%d \n", len(p.Name)))}
	}
	return rasters, nil
}

func startFakeIrpc(t *testing.T, err error) (*fakeRenderer, string) {
	t.Helper()
	f := &fakeRenderer{err: err, requests: make(chan fractal.RenderRequest, 1)}
	l, lerr := net.Listen("tcp", "127.0.0.1:0")
	if lerr != nil {
		t.Fatal(lerr)
	}
	s := irpc.NewServer(irpc.WithServices(fractal.NewRendererIrpcService(f)))
	go s.Serve(l)
	t.Cleanup(func() { s.Close() })
	return f, l.Addr().String()
}

func useIrpc(t *testing.T, address string) {
	t.Helper()
	oldAddr, oldTransport := *addr, *transport
	*addr, *transport = address, "irpc"
	t.Cleanup(func() { *addr, *transport = oldAddr, oldTransport })
}

func TestRunIrpc(t *testing.T) {
	f, address := startFakeIrpc(t, nil)
	useIrpc(t, address)

	dir := t.TempDir()
	juliaIn := writeFile(t, dir, "julia.txt", juliaParams)
	mandelIn := writeFile(t, dir, "mandel.txt", mandelbrotParams)
	outputs := []string{filepath.Join(dir, "julia.pgm"), filepath.Join(dir, "mandelbrot.pgm")}

	if err := run([]string{juliaIn, outputs[0], mandelIn, outputs[1]}); err != nil {
		t.Fatalf("run: %v", err)
	}
	req := <-f.requests
	if req.Threads != *threads || len(req.Passes) != 2 || req.Passes[0].Params != juliaParams {
		t.Errorf("service received %+v", req)
	}
	for i, out := range outputs {
		b, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		want := fmt.Sprintf("P2\n1 1\n255\n%d \n", len(req.Passes[i].Name))
		if string(b) != want {
			t.Errorf("%s = %q, want %q", out, b, want)
		}
	}
}

func TestRunIrpcRejected(t *testing.T) {
	_, address := startFakeIrpc(t, errors.New("too many renders in progress"))
	useIrpc(t, address)

	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", mandelbrotParams)
	out := filepath.Join(dir, "out.pgm")

	err := run([]string{in, out, in, out})
	if err == nil || !strings.Contains(err.Error(), "too many renders in progress") {
		t.Fatalf("run() error = %v, want the service error", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output written after rejection: %v", err)
	}
}

func TestRunUnknownTransport(t *testing.T) {
	old := *transport
	*transport = "smoke-signals"
	t.Cleanup(func() { *transport = old })

	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", mandelbrotParams)
	out := filepath.Join(dir, "out.pgm")
	if err := run([]string{in, out, in, out}); !errors.Is(err, errUsage) {
		t.Errorf("run() error = %v, want %v", err, errUsage)
	}
}
