// fractals renders a Julia and a Mandelbrot set with a fixed pool of workers
// and writes both as plain PGM files.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	fractal "github.com/marben/par_fractals"
)

const usage = "usage: fractals <julia_in> <julia_out> <mandelbrot_in> <mandelbrot_out> <thread_count>"

var errUsage = errors.New("bad arguments")

func main() {
	logx.MustSetup(logx.LogConf{Mode: "console", Encoding: "plain", Level: "info"})

	if err := run(os.Args[1:]); err != nil {
		logx.Error(err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("%w: got %d arguments", errUsage, len(args))
	}

	threads, err := strconv.Atoi(args[4])
	if err != nil {
		return fmt.Errorf("%w: thread count %q", errUsage, args[4])
	}

	cfg := fractal.Config{Threads: threads}
	return fractal.Run(cfg,
		fractal.Pass{Name: "julia", Source: fractal.FileSource(args[0]), Sink: fractal.FileSink(args[1])},
		fractal.Pass{Name: "mandelbrot", Source: fractal.FileSource(args[2]), Sink: fractal.FileSink(args[3])},
	)
}
