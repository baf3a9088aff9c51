package store

import (
	"context"
	"errors"
	"fmt"

	"socialtrackr/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKV persists blobs in the state_blobs table, one row per key.
type GormKV struct{ db *gorm.DB }

func NewGormKV(db *gorm.DB) *GormKV { return &GormKV{db: db} }

func (s *GormKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row model.StateBlob
	err := s.db.WithContext(ctx).Where("email = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get blob %s: %w", key, err)
	}
	return row.Data, true, nil
}

func (s *GormKV) Put(ctx context.Context, key string, value []byte) error {
	row := model.StateBlob{Email: key, Data: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("put blob %s: %w", key, err)
	}
	return nil
}

func (s *GormKV) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("email = ?", key).Delete(&model.StateBlob{}).Error; err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}
