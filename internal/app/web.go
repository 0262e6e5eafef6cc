package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown of the HTTP listeners.
const shutdownTimeout = 3 * time.Second

// ServeOptions configures RunServe.
type ServeOptions struct {
	HTTPAddr  string
	WSAddr    string
	StaticDir string
	IndexFile string

	// Ready, when set, is called with the bound addresses once both
	// servers accept connections.
	Ready func(web, ws net.Addr)
}

// ClientConfig is served to the phone page as /config.json.
type ClientConfig struct {
	WSPort int `json:"ws_port"`
}

// StaticHandler serves dir, answering "/" with the index file and
// "/config.json" with client.
func StaticHandler(dir, index string, client ClientConfig) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			http.ServeFile(w, r, filepath.Join(dir, index))
		case "/config.json":
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", "no-store")
			if err := jsoniter.NewEncoder(w).Encode(client); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		default:
			files.ServeHTTP(w, r)
		}
	})
}

// RunServe starts the static page server and the websocket server and
// blocks until ctx is cancelled or one of them fails.
func RunServe(ctx context.Context, engine *Engine, opts ServeOptions) error {
	addrs := []string{opts.HTTPAddr, opts.WSAddr}
	listeners := make([]net.Listener, 0, len(addrs))
	for _, addr := range addrs {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			for _, l := range listeners {
				l.Close()
			}
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		listeners = append(listeners, ln)
	}
	webLn, wsLn := listeners[0], listeners[1]

	// the bound port, so ":0" works too
	wsPort := wsLn.Addr().(*net.TCPAddr).Port
	webSrv := &http.Server{
		Handler:           StaticHandler(opts.StaticDir, opts.IndexFile, ClientConfig{WSPort: wsPort}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	wsMux := http.NewServeMux()
	wsMux.HandleFunc("/", engine.HandleWS)
	wsSrv := &http.Server{
		Handler:           wsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	servers := []*http.Server{webSrv, wsSrv}

	g, gctx := errgroup.WithContext(ctx)
	for i, srv := range servers {
		srv, ln := srv, listeners[i]
		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", ln.Addr(), err)
			}
			return nil
		})
	}

	if opts.Ready != nil {
		opts.Ready(webLn.Addr(), wsLn.Addr())
	}

	ip := LocalIP()
	engine.logger.Info("page server started", zap.String("open", fmt.Sprintf("http://%s%s", ip, portOf(webLn.Addr().String()))))
	engine.logger.Info("websocket server listening", zap.String("url", fmt.Sprintf("ws://%s%s", ip, portOf(wsLn.Addr().String()))))

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		// hijacked websocket connections are not tracked by Shutdown; wait
		// for their handlers so nothing touches the driver after return
		engine.closeConnections()
		return errors.Join(errs...)
	})
	return g.Wait()
}

func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return ":" + port
}

// LocalIP returns the address of the interface used for outbound
// traffic, which is the one a phone on the same LAN can reach. No packet
// is sent.
func LocalIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "127.0.0.1"
}
