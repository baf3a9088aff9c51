package repository

import (
	"context"
	"errors"
	"fmt"

	"socialtrackr/internal/model"

	"gorm.io/gorm"
)

type gormAccountRepo struct{ db *gorm.DB }

func NewGormAccountRepo(db *gorm.DB) AccountRepo {
	return &gormAccountRepo{db: db}
}

func (r *gormAccountRepo) Create(ctx context.Context, a *model.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *gormAccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query account: %w", err)
	}
	return &a, nil
}
