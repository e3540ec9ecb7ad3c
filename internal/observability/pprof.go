package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/whalecast/internal/config"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
)

// PprofServer is the debug listener. A nil *PprofServer is a disabled server.
type PprofServer struct {
	srv    *http.Server
	logger *logging.Logger
}

// StartPprof binds synchronously so a bad PPROF_ADDR fails startup.
func StartPprof(cfg config.Config, logger *logging.Logger) (*PprofServer, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, fmt.Errorf("listen pprof addr %s: %w", cfg.PprofAddr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	p := &PprofServer{
		srv: &http.Server{
			Addr:              ln.Addr().String(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger.Named("pprof"),
	}
	go func() {
		p.logger.Info("pprof server starting", "addr", p.srv.Addr)
		if err := p.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("pprof server failed", "error", err)
		}
	}()
	return p, nil
}

// Addr is the bound address, useful when PPROF_ADDR asked for port 0.
func (p *PprofServer) Addr() string {
	if p == nil {
		return ""
	}
	return p.srv.Addr
}

func (p *PprofServer) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown pprof server: %w", err)
	}
	p.logger.Info("pprof server stopped", "addr", p.srv.Addr)
	return nil
}
