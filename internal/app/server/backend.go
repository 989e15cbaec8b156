package server

import (
	"context"
	"fmt"
	"log/slog"

	"perfdash/internal/domain/dashboard"
	"perfdash/internal/platform/awsclient"
	"perfdash/internal/platform/config"
	"perfdash/internal/platform/db"
	"perfdash/internal/platform/storage/dynamostore"
	"perfdash/internal/platform/storage/pgstore"
	"perfdash/internal/platform/storage/redisstore"
	"perfdash/internal/platform/storage/s3store"
)

// Pinger is implemented by backends that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type backend struct {
	store  dashboard.StoreAPI
	pinger Pinger
	close  func()
}

func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (backend, error) {
	switch cfg.StoreBackend {
	case config.BackendDynamoDB:
		sess, err := awsclient.NewSession(cfg)
		if err != nil {
			return backend{}, err
		}
		store := dynamostore.New(sess, cfg.UsersTable, cfg.MetricsTable)
		return backend{store: store, pinger: store}, nil

	case config.BackendS3:
		awsCfg, err := awsclient.LoadConfig(ctx, cfg)
		if err != nil {
			return backend{}, err
		}
		store := s3store.New(awsCfg, cfg.DataBucket, cfg.DataPrefix)
		return backend{store: store, pinger: store}, nil

	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return backend{}, err
		}
		store := redisstore.New(client, cfg.DataPrefix)
		return backend{store: store, pinger: store, close: func() {
			if err := client.Close(); err != nil {
				logger.Warn("close redis client", "err", err)
			}
		}}, nil

	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return backend{}, err
		}
		if cfg.DBMigrate {
			if err := db.Migrate(ctx, pool); err != nil {
				pool.Close()
				return backend{}, err
			}
		}
		if cfg.DBSeedSample {
			if err := db.Seed(ctx, pool); err != nil {
				pool.Close()
				return backend{}, err
			}
			logger.Info("seeded sample dashboard data")
		}
		return backend{store: pgstore.New(pool), pinger: pool, close: pool.Close}, nil

	case config.BackendNone:
		return backend{store: dashboard.NopStore{}}, nil

	default:
		return backend{}, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}
