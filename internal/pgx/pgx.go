package pgx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"github.com/reelbites/reelbites/pkg/config"
	"github.com/reelbites/reelbites/pkg/logger"
	"github.com/reelbites/reelbites/pkg/retry"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

func New(opts Opts) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(
		context.Background(),
		fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
			opts.Config.Postgres.Name, opts.Config.Postgres.User, opts.Config.Postgres.Pass,
			opts.Config.Postgres.Host, opts.Config.Postgres.Port, opts.Config.Postgres.SslMode),
	)
	if err != nil {
		return nil, err
	}

	opts.LC.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				err := retry.Do(ctx, opts.Logger, "ping postgres", func() error {
					return pool.Ping(ctx)
				}, retry.DefaultConfig())
				if err != nil {
					return err
				}

				opts.Logger.Info("Connected to postgres")
				return nil
			},
			OnStop: func(ctx context.Context) error {
				pool.Close()
				return nil
			},
		},
	)

	return pool, nil
}
