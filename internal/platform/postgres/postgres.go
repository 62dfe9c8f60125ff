package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a PostgreSQL connection via GORM, registers query tracing, and
// verifies connectivity. The returned cleanup closes the pool.
func Connect(ctx context.Context, dsn string, log *slog.Logger) (*gorm.DB, func(), error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, nil, err
	}
	if err := db.Use(otelgorm.NewPlugin(otelgorm.WithDBName("checkout"), otelgorm.WithoutQueryVariables())); err != nil {
		return nil, nil, fmt.Errorf("register otelgorm: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	if log != nil {
		log.Info("postgres connection established")
	}
	return db, func() { _ = sqlDB.Close() }, nil
}
