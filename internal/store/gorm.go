package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one persisted key/value pair.
type Record struct {
	Key       string    `gorm:"primaryKey"     json:"key"`
	Value     string    `gorm:"not null"       json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Record) TableName() string {
	return "kv_records"
}

// GormKV persists snapshots through gorm. Backed by sqlite for the local
// single-user store or postgres when the storefront runs shared.
type GormKV struct {
	DB *gorm.DB
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

// OpenSQLite opens (or creates) a local sqlite database file.
func OpenSQLite(path string) (*GormKV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return &GormKV{DB: db}, nil
}

// OpenPostgres connects to a postgres-backed store.
func OpenPostgres(ctx context.Context, dsn string) (*GormKV, error) {
	if dsn == "" {
		return nil, fmt.Errorf("STORE_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return &GormKV{DB: db}, nil
}

func (g *GormKV) Get(ctx context.Context, key string) (string, error) {
	var rec Record
	if err := g.DB.WithContext(ctx).Where("key = ?", key).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return rec.Value, nil
}

func (g *GormKV) Set(ctx context.Context, key, value string) error {
	rec := Record{Key: key, Value: value}
	return g.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

func (g *GormKV) Delete(ctx context.Context, key string) error {
	return g.DB.WithContext(ctx).Where("key = ?", key).Delete(&Record{}).Error
}

// Close releases the underlying connection pool.
func (g *GormKV) Close() error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
