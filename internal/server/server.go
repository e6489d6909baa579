package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-login-service/internal/config"
	handler "github.com/MKhiriev/go-login-service/internal/handler/http"
	"github.com/MKhiriev/go-login-service/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer wires the HTTP handler into a managed server. It fails when the
// configuration provides no listen address.
func NewServer(h *handler.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, errNoHTTPServerConfigured
	}

	return &server{
		httpServer: newHTTPServer(h.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT, then drains in-flight
// requests and returns.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	drained := make(chan struct{})
	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(drained)
	}()

	s.logger.Info().Msg("launching HTTP server")
	go s.httpServer.RunServer()

	<-drained
	s.logger.Info().Msg("server shut down gracefully")
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}
