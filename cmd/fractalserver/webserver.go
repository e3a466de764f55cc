package main

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/coder/websocket"
	"github.com/zeromicro/go-zero/core/logx"

	fractal "github.com/marben/par_fractals"
)

// maxCloseReason is the longest reason a close frame can carry.
const maxCloseReason = 123

// webServer creates the http server with the websocket endpoint at /ws.
// Websockets opened on /irpc are handed to l for the irpc server.
func webServer(c Config, rs *renderScheduler, l *wsListener) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(rs, c.OriginPatterns))
	mux.HandleFunc("/irpc", l.handler(c.OriginPatterns))

	return &http.Server{
		Addr:              c.ListenOn,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// websocketHandler accepts the websocket and hands it to the scheduler.
// The outcome of the render is reported in the close frame.
func websocketHandler(rs *renderScheduler, origins []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: origins,
		})
		if err != nil {
			logx.Error(err)
			return
		}
		defer c.CloseNow()

		logx.Infof("got connection from: %s", r.RemoteAddr)
		if err := rs.serve(r.Context(), c); err != nil {
			logx.Errorf("render for %s: %v", r.RemoteAddr, err)
			c.Close(closeStatus(err), closeReason(err))
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	}
}

func closeStatus(err error) websocket.StatusCode {
	switch {
	case errors.Is(err, errBusy):
		return websocket.StatusTryAgainLater
	case errors.Is(err, errBadRequest), errors.Is(err, fractal.ErrParams):
		return websocket.StatusPolicyViolation
	default:
		return websocket.StatusInternalError
	}
}

// closeReason cuts the error text to fit a close frame, on a rune boundary.
func closeReason(err error) string {
	reason := err.Error()
	if len(reason) <= maxCloseReason {
		return reason
	}
	n := maxCloseReason
	for n > 0 && !utf8.RuneStart(reason[n]) {
		n--
	}
	return reason[:n]
}
