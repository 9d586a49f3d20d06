package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruitflow-go/internal/platform/config"
	"recruitflow-go/internal/platform/logging"
	"recruitflow-go/internal/stubapi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stub-server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", ":8000", "listen address")
	pushInterval := flag.Duration("push-interval", 5*time.Second, "socket notification push interval")
	configPath := flag.String("config", "", "path to config.yaml (optional)")
	flag.Parse()

	result, err := config.NewLoader().WithPath(*configPath).Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(result.Config.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	stub := stubapi.New(logger, *pushInterval)
	server := &http.Server{
		Addr:    *addr,
		Handler: stub.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.InfoTag("STUB", "listening on %s", *addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WarnTag("STUB", "shutdown not clean: %v", err)
	}
	logger.InfoTag("STUB", "stopped")
	return nil
}
