package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// slotRow is the single table backing the sqlite store.
type slotRow struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (slotRow) TableName() string {
	return "slots"
}

// SQLite persists slots into a local sqlite file, the durable single-user
// slot the storefront defaults to.
type SQLite struct {
	conn *gorm.DB
}

// NewSQLite opens (and migrates) the sqlite-backed store.
func NewSQLite(ctx context.Context, cfg config.PersistenceConfig, logg *logger.Logger) (*SQLite, error) {
	if cfg.SQLitePath == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite slot store: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&slotRow{}); err != nil {
		return nil, fmt.Errorf("migrating slot table: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "path", cfg.SQLitePath), "sqlite slot store ready")
	}

	return &SQLite{conn: conn}, nil
}

func (s *SQLite) Read(ctx context.Context, key string) (string, bool, error) {
	var row slotRow
	err := s.conn.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading slot %q: %w", key, err)
	}
	return row.Value, true, nil
}

func (s *SQLite) Write(ctx context.Context, key, value string) error {
	row := slotRow{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Remove(ctx context.Context, key string) error {
	if err := s.conn.WithContext(ctx).Delete(&slotRow{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("removing slot %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the pooled connections.
func (s *SQLite) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
