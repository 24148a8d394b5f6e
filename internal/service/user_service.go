package service

import (
	"context"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/Destinytch001/naits-server/internal/repository"
	"github.com/Destinytch001/naits-server/pkg/apperror"
	"github.com/google/uuid"
)

type UserService interface {
	List(ctx context.Context, q dto.ListUsersQuery) ([]*entity.User, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, q dto.ListUsersQuery) ([]*entity.User, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 10
	}

	return s.repo.FindAll(ctx, q)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.NotFound("User not found")
	}

	return nil
}
