//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/snapshot"
	"github.com/Apurer/go-gin-checkout/internal/domains/cart/application"
	"github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-checkout/internal/platform/migrations"
)

func setupStoragePostgresContainer(t *testing.T) *gorm.DB {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("checkout_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, migrations.Up(sqlDB))
	_ = sqlDB.Close()

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestStorage_GetSet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	storage := NewStorage(setupStoragePostgresContainer(t))
	ctx := context.Background()

	_, err := storage.Get(ctx, "cart")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	require.NoError(t, storage.Set(ctx, "cart", []byte(`[]`)))
	require.NoError(t, storage.Set(ctx, "cart", []byte(`[{"productId":"a","quantity":1}]`)))

	got, err := storage.Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"a","quantity":1}]`, string(got))
}

func TestStorage_CartStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	storage := NewStorage(setupStoragePostgresContainer(t))
	ctx := context.Background()

	store, err := application.Open(ctx, snapshot.NewStore(storage, ""))
	require.NoError(t, err)
	assert.Equal(t, application.SourceDefault, store.Source())
	_, err = store.SetDeliveryOption(ctx, "15b6fc6f-327a-4ec4-896f-486349e85a3d", "3")
	require.NoError(t, err)

	reopened, err := application.Open(ctx, snapshot.NewStore(storage, ""))
	require.NoError(t, err)
	assert.Equal(t, application.SourceSnapshot, reopened.Source())
	line, ok := reopened.Snapshot(ctx).Line("15b6fc6f-327a-4ec4-896f-486349e85a3d")
	require.True(t, ok)
	assert.Equal(t, "3", line.DeliveryOptionID)
	assert.Len(t, reopened.Snapshot(ctx).Lines, len(domain.DefaultCart().Lines))
}

func TestStorage_NotConfigured(t *testing.T) {
	_, err := NewStorage(nil).Get(context.Background(), "cart")
	require.Error(t, err)
}
