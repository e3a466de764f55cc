// fractalclient is a CLI client for the fractal render service.
// It submits a Julia and a Mandelbrot parameter set, waits for both rasters
// and saves them as PGM files.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"
	"github.com/marben/irpc"
	"github.com/zeromicro/go-zero/core/logx"

	fractal "github.com/marben/par_fractals"
)

var (
	addr       = flag.String("addr", "ws://localhost:8080/ws", "render service websocket url")
	threads    = flag.Int("threads", 4, "workers used by the service")
	preset     = flag.String("preset", "", "render a named Mandelbrot region instead of reading mandelbrot_in ("+strings.Join(fractal.PresetNames(), ", ")+")")
	resolution = flag.Float64("resolution", 0.001, "sample spacing used with -preset")
	iterations = flag.Int("iterations", 500, "iteration cap used with -preset")
	timeout    = flag.Duration("timeout", 5*time.Minute, "give up after this long")
	transport  = flag.String("transport", "ws", "protocol spoken to the service: ws or irpc (irpc -addr is a ws url or host:port)")
)

var errUsage = errors.New("bad arguments")

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: fractalclient [flags] <julia_in> <julia_out> <mandelbrot_in> <mandelbrot_out>")
		fmt.Fprintln(os.Stderr, "       fractalclient [flags] -preset name <julia_in> <julia_out> <mandelbrot_out>")
		flag.PrintDefaults()
	}
	flag.Parse()
	logx.MustSetup(logx.LogConf{Mode: "console", Encoding: "plain", Level: "info"})

	if err := run(flag.Args()); err != nil {
		logx.Errorf("FATAL: %v", err)
		if errors.Is(err, errUsage) {
			flag.Usage()
		}
		os.Exit(1)
	}
}

// run builds the request from the command line and renders it remotely.
func run(args []string) error {
	// Step 1: Collect the parameter sets
	var req fractal.RenderRequest
	var outputs []string
	switch {
	case *preset != "" && len(args) == 3:
		region, ok := fractal.Preset(*preset)
		if !ok {
			return fmt.Errorf("%w: unknown preset %q", errUsage, *preset)
		}
		julia, err := readParams(args[0])
		if err != nil {
			return err
		}
		req.Passes = []fractal.PassRequest{
			{Name: "julia", Params: julia},
			{Name: "mandelbrot", Params: region.Mandelbrot(*resolution, *iterations).Format()},
		}
		outputs = []string{args[1], args[2]}
	case *preset == "" && len(args) == 4:
		julia, err := readParams(args[0])
		if err != nil {
			return err
		}
		mandelbrot, err := readParams(args[2])
		if err != nil {
			return err
		}
		req.Passes = []fractal.PassRequest{
			{Name: "julia", Params: julia},
			{Name: "mandelbrot", Params: mandelbrot},
		}
		outputs = []string{args[1], args[3]}
	default:
		return fmt.Errorf("%w: got %d arguments", errUsage, len(args))
	}
	req.Threads = *threads

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	switch *transport {
	case "ws":
		return render(ctx, *addr, req, outputs)
	case "irpc":
		return renderIrpc(ctx, *addr, req, outputs)
	default:
		return fmt.Errorf("%w: unknown transport %q", errUsage, *transport)
	}
}

// readParams loads a parameter file and checks it before it is sent.
func readParams(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	if _, err := fractal.ParseParams(strings.NewReader(string(b))); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return string(b), nil
}

// render sends req to the service at url and writes raster i to outputs[i].
func render(ctx context.Context, url string, req fractal.RenderRequest, outputs []string) error {
	// Step 2: Connect to the render service
	logx.Infof("Connecting to render service at %s...", url)
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer c.CloseNow()
	c.SetReadLimit(-1)

	// Step 3: Submit the passes
	msg, err := sonic.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	if err := c.Write(ctx, websocket.MessageText, msg); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	// Step 4: Receive one header and raster per pass
	for i, out := range outputs {
		if err := receiveRaster(ctx, c, out); err != nil {
			return fmt.Errorf("pass %d (%s): %w", i, req.Passes[i].Name, err)
		}
	}

	return c.Close(websocket.StatusNormalClosure, "")
}

func receiveRaster(ctx context.Context, c *websocket.Conn, filename string) error {
	_, msg, err := c.Read(ctx)
	if err != nil {
		return serverError(err)
	}
	var header fractal.RasterHeader
	if err := sonic.Unmarshal(msg, &header); err != nil {
		return fmt.Errorf("decode header: %w", err)
	}

	typ, raster, err := c.Read(ctx)
	if err != nil {
		return serverError(err)
	}
	if typ != websocket.MessageBinary || len(raster) != header.Size {
		return fmt.Errorf("unexpected raster message: %d bytes, want %d", len(raster), header.Size)
	}

	// Step 5: Save the raster
	if err := os.WriteFile(filename, raster, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logx.Infof("%s raster %dx%d saved to %q", header.Name, header.Width, header.Height, filename)
	return nil
}

// serverError turns a close frame sent by the service into a readable error.
func serverError(err error) error {
	var ce websocket.CloseError
	if errors.As(err, &ce) {
		return fmt.Errorf("server closed connection (%v): %s", ce.Code, ce.Reason)
	}
	return err
}

// renderIrpc calls the Renderer service at addr and writes raster i to
// outputs[i]. A ws:// or wss:// addr is dialed as a websocket, anything
// else as tcp.
func renderIrpc(ctx context.Context, addr string, req fractal.RenderRequest, outputs []string) error {
	// Step 2: Connect to the render service
	logx.Infof("Connecting to irpc render service at %s...", addr)
	conn, err := dialIrpc(ctx, addr)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	ep := irpc.NewEndpoint(conn)
	defer ep.Close()

	client, err := fractal.NewRendererIrpcClient(ep)
	if err != nil {
		return fmt.Errorf("failed to create renderer client: %w", err)
	}

	// Step 3: Render all passes in one call
	rasters, err := client.Render(ctx, req.Threads, req.Passes)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if len(rasters) != len(outputs) {
		return fmt.Errorf("got %d rasters for %d passes", len(rasters), len(outputs))
	}

	// Step 4: Save the rasters
	for i, r := range rasters {
		if err := os.WriteFile(outputs[i], r.PGM, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logx.Infof("%s raster %dx%d saved to %q", r.Name, r.Width, r.Height, outputs[i])
	}
	return nil
}

func dialIrpc(ctx context.Context, addr string) (net.Conn, error) {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		c, _, err := websocket.Dial(ctx, addr, nil)
		if err != nil {
			return nil, err
		}
		return websocket.NetConn(context.Background(), c, websocket.MessageBinary), nil
	}
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}
