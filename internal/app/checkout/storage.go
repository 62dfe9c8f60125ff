package checkout

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	cartmemory "github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/memory"
	cartpostgres "github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/persistence/postgres"
	cartredis "github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/persistence/redis"
	cartsqlite "github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/persistence/sqlite"
	cartports "github.com/Apurer/go-gin-checkout/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-checkout/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-checkout/internal/platform/postgres"
)

// buildStorage opens the configured backend. Connection failures fall back
// to in-memory storage with a warning.
func buildStorage(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.Storage, func()) {
	switch cfg.Storage.Driver {
	case DriverSQLite:
		storage, err := cartsqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return memoryFallback(logger, DriverSQLite, err)
		}
		logger.Info("cart storage configured with sqlite", slog.String("path", cfg.SQLite.Path))
		return storage, func() { _ = storage.Close() }
	case DriverPostgres:
		db, cleanup, err := platformpostgres.Connect(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			return memoryFallback(logger, DriverPostgres, err)
		}
		sqlDB, err := db.DB()
		if err == nil {
			err = migrations.Up(sqlDB)
		}
		if err != nil {
			cleanup()
			return memoryFallback(logger, DriverPostgres, err)
		}
		logger.Info("cart storage configured with postgres")
		return cartpostgres.NewStorage(db), cleanup
	case DriverRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return memoryFallback(logger, DriverRedis, err)
		}
		logger.Info("cart storage configured with redis", slog.String("addr", cfg.Redis.Addr))
		return cartredis.NewStorage(client, cartredis.WithPrefix(cfg.Redis.Prefix)), func() { _ = client.Close() }
	default:
		logger.Info("cart storage configured in memory")
		return cartmemory.NewStorage(), func() {}
	}
}

func memoryFallback(logger *slog.Logger, driver string, err error) (cartports.Storage, func()) {
	logger.Warn("failed to open cart storage, falling back to memory",
		slog.String("driver", driver),
		slog.String("error", err.Error()))
	return cartmemory.NewStorage(), func() {}
}
