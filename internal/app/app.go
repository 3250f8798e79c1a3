package app

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"

	"github.com/reelbites/reelbites/internal/docstore/docstoreimpl"
	"github.com/reelbites/reelbites/internal/feed/feedimpl"
	"github.com/reelbites/reelbites/internal/httpserver"
	"github.com/reelbites/reelbites/internal/janitor"
	"github.com/reelbites/reelbites/internal/janitor/janitorimpl"
	"github.com/reelbites/reelbites/internal/media/mediaimpl"
	"github.com/reelbites/reelbites/internal/pgx"
	"github.com/reelbites/reelbites/internal/recommend/recommendimpl"
	"github.com/reelbites/reelbites/pkg/config"
	"github.com/reelbites/reelbites/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		httpserver.New,
	),
	docstoreimpl.Module,
	mediaimpl.Module,
	feedimpl.Module,
	recommendimpl.Module,
	janitorimpl.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func migrate(cfg *config.Config, log logger.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	dir := filepath.Join(wd, "migrations")
	log.Info("Running migrations", "dir", dir)
	return goose.Up(db, dir)
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, server *httpserver.Server, janitorClient janitor.Client) {
	appCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server stopped", "error", err)
				}
			}()

			if cfg.Janitor.Enabled {
				if err := janitorClient.Schedule(appCtx); err != nil {
					log.Error("Failed to schedule janitor", "error", err)
					return err
				}
			}

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return server.Shutdown(ctx)
		},
	})
}
