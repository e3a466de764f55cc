package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/google/gops/agent"
	"github.com/marben/irpc"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"

	fractal "github.com/marben/par_fractals"
)

var configFile = flag.String("f", "etc/fractalserver.yaml", "the config file")

// main is the entry point for the render service.
// Every client, whether on the websocket protocol or on irpc, submits its own passes; each request is rendered by
// its own worker pool while the grid memory budget is shared by all of them.
func main() {
	flag.Parse()

	var c Config
	conf.MustLoad(*configFile, &c)
	logx.MustSetup(c.Log)

	if err := run(c); err != nil {
		logx.Errorf("run: %+v", err)
		logx.Close()
		os.Exit(1)
	}
}

func run(c Config) error {
	if c.Gops {
		if err := agent.Listen(agent.Options{Addr: c.GopsAddr, ShutdownCleanup: true}); err != nil {
			return fmt.Errorf("gops agent: %w", err)
		}
		defer agent.Close()
	}

	scheduler := newRenderScheduler(c)

	// irpc clients reach the same scheduler over websocket and plain tcp
	irpcServer := newIrpcServer(scheduler)
	wsl := newWSListener(context.Background(), c.ListenOn+"/irpc")
	srv := webServer(c, scheduler, wsl)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		logx.Infof("fractal server listening on %s", c.ListenOn)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return serveIrpc(irpcServer, wsl)
	})
	if c.IrpcListenOn != "" {
		tcpl, err := net.Listen("tcp", c.IrpcListenOn)
		if err != nil {
			srv.Close()
			irpcServer.Close()
			return fmt.Errorf("irpc listen: %w", err)
		}
		logx.Infof("irpc listening on %s", tcpl.Addr())
		g.Go(func() error {
			return serveIrpc(irpcServer, tcpl)
		})
	}

	// the first failure stops the rest
	g.Go(func() error {
		<-ctx.Done()
		srv.Close()
		irpcServer.Close()
		return nil
	})
	return g.Wait()
}

func newIrpcServer(rs *renderScheduler) *irpc.Server {
	s := irpc.NewServer(irpc.WithOnConnect(func(ep *irpc.Endpoint) {
		logx.Infof("irpc connection from: %s", ep.RemoteAddr())
	}))
	s.AddService(fractal.NewRendererIrpcService(rs))
	return s
}

func serveIrpc(s *irpc.Server, l net.Listener) error {
	if err := s.Serve(l); err != nil && !errors.Is(err, irpc.ErrServerClosed) {
		return fmt.Errorf("irpc serve on %s: %w", l.Addr(), err)
	}
	return nil
}
