package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"go.hackfix.me/hexo/store"
	"go.hackfix.me/hexo/web/server/api"
)

// Server is a development shard: an http.Server speaking the HexoDB wire
// protocol on top of a Store.
type Server struct {
	*http.Server
	logger *slog.Logger
}

// New returns a new Server instance.
func New(st store.Store, addr string, logger *slog.Logger) *Server {
	return &Server{
		logger: logger,
		Server: &http.Server{
			Handler:           setupRouter(st, logger),
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
	}
}

// ListenAndServe is a replacement of http.ListenAndServe to ensure we set the
// actual server address when starting the server with address ':0'. It stops
// the server gracefully when ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}

	s.Addr = ln.Addr().String()
	s.logger.Info("started shard server", "address", s.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("stopping shard server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func setupRouter(st store.Store, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(middleware.Recoverer)

	r.Mount("/", api.Router(st, logger))

	return r
}
