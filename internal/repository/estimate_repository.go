package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/concrete-calc/internal/domain"
	"gorm.io/gorm"
)

type EstimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

func (r *EstimateRepository) Create(ctx context.Context, estimate *domain.Estimate) error {
	return r.db.WithContext(ctx).Create(estimate).Error
}

// GetByID returns the estimate regardless of expiry; callers decide how to
// treat expired rows.
func (r *EstimateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Estimate, error) {
	var estimate domain.Estimate
	err := r.db.WithContext(ctx).First(&estimate, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// ListRecent returns up to limit non-expired estimates, newest first
func (r *EstimateRepository) ListRecent(ctx context.Context, now time.Time, limit int) ([]domain.Estimate, error) {
	var estimates []domain.Estimate
	err := r.db.WithContext(ctx).
		Where("expires_at > ?", now).
		Order("created_at DESC").
		Limit(limit).
		Find(&estimates).Error
	return estimates, err
}

// CountActive counts non-expired estimates
func (r *EstimateRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Estimate{}).
		Where("expires_at > ?", now).
		Count(&count).Error
	return count, err
}

// ListExpiredIDs returns the ids of estimates whose expiry is at or before now
func (r *EstimateRepository) ListExpiredIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Estimate{}).
		Where("expires_at <= ?", now).
		Pluck("id", &ids).Error
	return ids, err
}

// DeleteByIDs removes the given estimates and returns the number deleted
func (r *EstimateRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Estimate{})
	return result.RowsAffected, result.Error
}
