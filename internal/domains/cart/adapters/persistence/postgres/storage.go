package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/ports"
)

var _ ports.Storage = (*Storage)(nil)

// Storage persists snapshots in PostgreSQL using GORM. The schema comes from
// the platform migrations.
type Storage struct {
	db *gorm.DB
}

// NewStorage wires a PostgreSQL-backed storage. Caller manages DB lifecycle.
func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// entryRecord maps one storage key to a row.
type entryRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:255"`
	Value     []byte    `gorm:"column:value;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (entryRecord) TableName() string { return "storage_entries" }

// Get fetches the value stored under key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record entryRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.Value, nil
}

// Set upserts the value for key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := entryRecord{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"value":      value,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(&record).Error
}

func (s *Storage) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres storage not configured")
	}
	return nil
}
