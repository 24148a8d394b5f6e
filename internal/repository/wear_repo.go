package repository

import (
	"context"

	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WearRepository interface {
	Create(ctx context.Context, item *entity.WearItem) error
	FindAll(ctx context.Context) ([]*entity.WearItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WearItem, error)
	Update(ctx context.Context, item *entity.WearItem) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.WearItem, error)
	// SearchByText is the database fallback when the search index is not
	// configured.
	SearchByText(ctx context.Context, query string) ([]*entity.WearItem, error)
}

type wearRepository struct {
	db *gorm.DB
}

func NewWearRepository(db *gorm.DB) WearRepository {
	return &wearRepository{db: db}
}

func (r *wearRepository) Create(ctx context.Context, item *entity.WearItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *wearRepository) FindAll(ctx context.Context) ([]*entity.WearItem, error) {
	var items []*entity.WearItem
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *wearRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WearItem, error) {
	var item entity.WearItem
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *wearRepository) Update(ctx context.Context, item *entity.WearItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *wearRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.WearItem{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *wearRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.WearItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var items []*entity.WearItem
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *wearRepository) SearchByText(ctx context.Context, query string) ([]*entity.WearItem, error) {
	var items []*entity.WearItem
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}
