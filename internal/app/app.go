// Package app wires the hub, the simulation loop and both transports into
// a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	server "arena-lobby/server"
	"arena-lobby/server/internal/net/httpapi"
	"arena-lobby/server/internal/net/tcp"
	"arena-lobby/server/logging"
)

// Config carries the listen addresses and log destination.
type Config struct {
	TCPAddr  string
	HTTPAddr string
	LogFile  string
}

// Run starts the server and blocks until ctx is cancelled or a listener
// fails. Failure to bind either listener is fatal.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.New(cfg.LogFile)
	defer logger.Sync()

	hub := server.NewHub(logger)

	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	tcpListener, err := tcp.Listen(cfg.TCPAddr, hub, logger)
	if err != nil {
		return fmt.Errorf("bind tcp %s: %w", cfg.TCPAddr, err)
	}
	defer tcpListener.Close()

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(hub, logger),
	}

	errs := make(chan error, 2)
	go func() {
		errs <- tcpListener.Serve()
	}()
	go func() {
		logger.Infof("http listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("bind http %s: %w", cfg.HTTPAddr, err)
			return
		}
		errs <- nil
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
		return nil
	case err := <-errs:
		return err
	}
}
