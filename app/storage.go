package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/infrastructure/sessions"
	predictiondb "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/infrastructure/repositories"
	predictionmigrations "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/scoreline-bot/config"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// OpenDB connects to Postgres with pgdriver.
func OpenDB(dsn string) *bun.DB {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(pgdb, pgdialect.New())
}

// Migrate applies pending prediction migrations.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrator := migrate.NewMigrator(db, predictionmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	if group.IsZero() {
		logger.InfoContext(ctx, "No new prediction migrations to run")
	} else {
		logger.InfoContext(ctx, "Migrated predictions schema", slog.String("group", group.String()))
	}
	return nil
}

// OpenPredictionRepository selects the prediction store named by the config.
// The returned close func releases the database connection, if any.
func OpenPredictionRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (predictiondb.Repository, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db := OpenDB(cfg.Storage.PostgresDSN)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := Migrate(ctx, db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.InfoContext(ctx, "Using postgres prediction store")
		return predictiondb.NewBunRepository(db), db.Close, nil
	default:
		logger.InfoContext(ctx, "Using JSON prediction store", slog.String("path", cfg.Storage.PredictionsPath))
		return predictiondb.NewJSONRepository(cfg.Storage.PredictionsPath), func() error { return nil }, nil
	}
}

// OpenSessionStore selects the session registry named by the config.
func OpenSessionStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (sessions.Store, func() error, error) {
	switch cfg.Sessions.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Sessions.RedisAddr,
			Password: cfg.Sessions.RedisPassword,
			DB:       cfg.Sessions.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.InfoContext(ctx, "Using redis session store", slog.String("addr", cfg.Sessions.RedisAddr))
		return sessions.NewRedisStore(client), client.Close, nil
	default:
		logger.InfoContext(ctx, "Using in-memory session store")
		return sessions.NewMemoryStore(), func() error { return nil }, nil
	}
}
