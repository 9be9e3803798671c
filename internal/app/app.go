// Package app wires configuration into a ready MetadataService.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/guillermoBallester/hzmeta/internal/adapter/postgres"
	"github.com/guillermoBallester/hzmeta/internal/adapter/sqldb"
	"github.com/guillermoBallester/hzmeta/internal/config"
	"github.com/guillermoBallester/hzmeta/internal/core/domain"
	"github.com/guillermoBallester/hzmeta/internal/core/port"
	"github.com/guillermoBallester/hzmeta/internal/core/service"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Runtime bundles the service with the resources backing it.
type Runtime struct {
	Metadata *service.MetadataService
	closers  []func()
}

// Close releases the database connections.
func (r *Runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// NewLogger returns a JSON logger writing to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Build connects to the configured engine and assembles the service.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{}

	executor, native, err := openExecutor(ctx, cfg, rt)
	if err != nil {
		rt.Close()
		return nil, err
	}

	style := native
	if override, ok := cfg.PlaceholderStyle(); ok {
		style = override
	}

	info := domain.NewEngineInfo(Version)
	info.ReadOnly = cfg.ReadOnly

	rt.Metadata = service.NewMetadataService(
		executor,
		service.NewCatalogQueryBuilder(style),
		service.NewMaterializer(domain.StandardTypes(), service.NewStandardCodec()),
		info,
		logger,
	)

	logger.Info("metadata service ready",
		slog.String("driver", cfg.Driver),
		slog.String("placeholder", style.String()),
		slog.Bool("read_only", cfg.ReadOnly),
	)
	return rt, nil
}

func openExecutor(ctx context.Context, cfg *config.Config, rt *Runtime) (port.QueryExecutor, service.PlaceholderStyle, error) {
	if cfg.Driver == config.DriverPgx {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.MaxConns)
		if err != nil {
			return nil, 0, fmt.Errorf("connecting to database: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)

		validator := domain.NewCatalogQueryValidator()
		return postgres.NewExecutor(pool, validator, cfg.ReadOnly, cfg.QueryTimeout), service.Dollar, nil
	}

	style, err := sqldb.Placeholder(cfg.Driver)
	if err != nil {
		return nil, 0, err
	}
	db, err := sqldb.Open(ctx, cfg.Driver, cfg.DatabaseURL)
	if err != nil {
		return nil, 0, fmt.Errorf("connecting to database: %w", err)
	}
	if cfg.Driver != config.DriverSQLite {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	rt.closers = append(rt.closers, func() { _ = db.Close() })

	return sqldb.NewExecutor(db, cfg.QueryTimeout), style, nil
}
