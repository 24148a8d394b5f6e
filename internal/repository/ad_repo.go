package repository

import (
	"context"
	"time"

	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdRepository interface {
	Create(ctx context.Context, ad *entity.SponsoredAd) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SponsoredAd, error)
	// FindActive re-filters on the expiry timestamp: an expired ad whose
	// flag has not been swept yet is still excluded.
	FindActive(ctx context.Context, now time.Time) ([]*entity.SponsoredAd, error)
	// FindExpired ignores the flag entirely.
	FindExpired(ctx context.Context, now time.Time) ([]*entity.SponsoredAd, error)
	UpdateExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time, active bool) error
	// DeactivateExpired flips is_active off for every ad past its expiry.
	// Idempotent bulk update; returns the number of ads deactivated.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type adRepository struct {
	db *gorm.DB
}

func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) Create(ctx context.Context, ad *entity.SponsoredAd) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *adRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SponsoredAd, error) {
	var ad entity.SponsoredAd
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ad).Error; err != nil {
		return nil, err
	}

	return &ad, nil
}

func (r *adRepository) FindActive(ctx context.Context, now time.Time) ([]*entity.SponsoredAd, error) {
	var ads []*entity.SponsoredAd
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND expires_at > ?", true, now).
		Order("created_at DESC").
		Find(&ads).Error; err != nil {
		return nil, err
	}

	return ads, nil
}

func (r *adRepository) FindExpired(ctx context.Context, now time.Time) ([]*entity.SponsoredAd, error) {
	var ads []*entity.SponsoredAd
	if err := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Order("created_at DESC").
		Find(&ads).Error; err != nil {
		return nil, err
	}

	return ads, nil
}

func (r *adRepository) UpdateExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time, active bool) error {
	return r.db.WithContext(ctx).Model(&entity.SponsoredAd{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"expires_at": expiresAt,
			"is_active":  active,
		}).Error
}

func (r *adRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.SponsoredAd{}).
		Where("expires_at <= ? AND is_active = ?", now, true).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

func (r *adRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.SponsoredAd{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
