package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/guillermoBallester/hzmeta/internal/adapter/httpserver"
	"github.com/guillermoBallester/hzmeta/internal/adapter/mcp"
	"github.com/guillermoBallester/hzmeta/internal/app"
	"github.com/guillermoBallester/hzmeta/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(nil)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := app.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("starting hzmeta-server",
		slog.String("version", app.Version),
		slog.String("log_level", cfg.LogLevel.String()),
		slog.String("listen_addr", cfg.ListenAddr),
	)

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	rt, err := app.Build(sigCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	srv := httpserver.New(httpserver.Config{
		ListenAddr:        cfg.ListenAddr,
		CORSOrigin:        cfg.CORSOrigin,
		RateLimit:         cfg.RateLimit,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}, rt.Metadata, mcp.NewServer(app.Version, rt.Metadata, logger), logger)

	// Second signal during shutdown = hard exit.
	go func() {
		<-sigCtx.Done()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		logger.Warn("forced shutdown", slog.String("signal", sig.String()))
		os.Exit(1)
	}()

	g, ctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		return srv.ListenAndServe()
	})

	// ctx ends on a signal or when the listener fails.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}
