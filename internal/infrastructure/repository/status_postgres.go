package repository

import (
	"context"

	"gorm.io/gorm"

	"learnfromvideo/internal/domain"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) Create(ctx context.Context, s *domain.StatusCheck) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StatusRepository) List(ctx context.Context, limit int) ([]domain.StatusCheck, error) {
	var checks []domain.StatusCheck
	err := r.db.WithContext(ctx).Order("timestamp asc").Limit(limit).Find(&checks).Error
	return checks, err
}
