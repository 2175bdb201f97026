package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farecast-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RunMarkers GORM model for database mapping
type RunMarkers struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (RunMarkers) TableName() string {
	return "run_markers"
}

// GormMarkerRepository implements the MarkerRepository interface
type GormMarkerRepository struct {
	db *gorm.DB
}

// NewGormMarkerRepository creates a GORM marker store and migrates its table
func NewGormMarkerRepository(db *gorm.DB) (repository.MarkerRepository, error) {
	if err := db.AutoMigrate(&RunMarkers{}); err != nil {
		return nil, fmt.Errorf("migrate run_markers: %w", err)
	}
	return &GormMarkerRepository{
		db: db,
	}, nil
}

// Get returns the marker value. Expired rows count as absent.
func (r *GormMarkerRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var marker RunMarkers
	result := r.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, time.Now().UTC()).
		First(&marker)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if result.Error != nil {
		return "", false, result.Error
	}
	return marker.Value, true, nil
}

// Put inserts or replaces the marker row
func (r *GormMarkerRepository) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	marker := RunMarkers{
		Key:       key,
		Value:     value,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&marker).Error
}

// Delete removes the marker row
func (r *GormMarkerRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&RunMarkers{}).Error
}
