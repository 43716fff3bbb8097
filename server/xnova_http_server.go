package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"xnova-server/config"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type XnovaHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	cfg       config.ServerConfig
	log       logrus.FieldLogger
}

func NewXnovaHttpServer(router *Router, muxRouter *mux.Router, cfg config.ServerConfig, log logrus.FieldLogger) *XnovaHttpServer {
	return &XnovaHttpServer{
		router:    router,
		muxRouter: muxRouter,
		cfg:       cfg,
		log:       log.WithField("component", "XnovaHttpServer"),
	}
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *XnovaHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.muxRouter,
	}

	// Channel to listen for interrupt or termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		s.log.Infof("Starting server on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("ListenAndServe(): %w", err)
		}
		return nil
	case sig := <-stop:
		s.log.Infof("Received %s, shutting down the server", sig)
	case <-ctx.Done():
		s.log.Info("Context cancelled, shutting down the server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.log.Info("Server exiting")
	return nil
}
