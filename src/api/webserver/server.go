package webserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/stake-plus/stackbuddy/src/actions/core"
)

var _ core.Module = (*Server)(nil)

// Server runs the status router as a manager module.
type Server struct {
	addr string
	log  *zap.Logger
	srv  *http.Server
	done chan struct{}
}

// NewServer prepares a server on addr. Nothing listens until Start.
func NewServer(addr string, allowOrigins []string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		addr: addr,
		log:  log,
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(allowOrigins),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Name implements core.Module.
func (s *Server) Name() string { return "status" }

// Start binds the listener and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("status: listen %s: %w", s.addr, err)
	}
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("status: serve", zap.Error(err))
		}
	}()
	s.log.Info("status: listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the server down, waiting up to ten seconds for open requests.
func (s *Server) Stop(ctx context.Context) {
	if s.done == nil {
		return
	}
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutCtx); err != nil {
		s.log.Warn("status: shutdown", zap.Error(err))
	}
	<-s.done
}
