package repository

import (
	"context"
	"time"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByNickname matches the nickname case-insensitively.
	FindByNickname(ctx context.Context, nickname string) (*entity.User, error)
	ExistsByNicknameOrWhatsapp(ctx context.Context, nickname, whatsapp string) (bool, error)
	FindAll(ctx context.Context, q dto.ListUsersQuery) ([]*entity.User, int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	RecordHeartbeat(ctx context.Context, id uuid.UUID, now time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	StampLastLogin(ctx context.Context, id uuid.UUID, now time.Time) error

	// MarkIdle moves online users whose last activity predates cutoff to
	// idle. MarkOffline moves online and idle users past cutoff to offline.
	// Both are single-statement bulk updates, safe to re-run.
	MarkIdle(ctx context.Context, cutoff time.Time) (int64, error)
	MarkOffline(ctx context.Context, cutoff time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByNickname(ctx context.Context, nickname string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(nickname) = LOWER(?)", nickname).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) ExistsByNicknameOrWhatsapp(ctx context.Context, nickname, whatsapp string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("LOWER(nickname) = LOWER(?) OR whatsapp = ?", nickname, whatsapp).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *userRepository) FindAll(ctx context.Context, q dto.ListUsersQuery) ([]*entity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.User{})

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR nickname ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if q.Department != "" {
		query = query.Where("department = ?", q.Department)
	}
	if q.Level != "" {
		query = query.Where("level = ?", q.Level)
	}
	if q.Status != "" {
		query = query.Where("status = LOWER(?)", q.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*entity.User
	offset := (q.Page - 1) * q.PerPage
	if err := query.Offset(offset).Limit(q.PerPage).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *userRepository) RecordHeartbeat(ctx context.Context, id uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      entity.StatusOnline,
			"last_active": now,
			"last_seen":   now,
		}).Error
}

func (r *userRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *userRepository) StampLastLogin(ctx context.Context, id uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Update("last_login", now).Error
}

func (r *userRepository) MarkIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("status = ? AND last_active < ?", entity.StatusOnline, cutoff).
		Update("status", entity.StatusIdle)
	return res.RowsAffected, res.Error
}

func (r *userRepository) MarkOffline(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("status IN ? AND last_active < ?", []string{entity.StatusOnline, entity.StatusIdle}, cutoff).
		Update("status", entity.StatusOffline)
	return res.RowsAffected, res.Error
}
