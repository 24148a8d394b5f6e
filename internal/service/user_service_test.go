package service

import (
	"context"
	"testing"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/Destinytch001/naits-server/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserListClampsPagination(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&entity.User{Nickname: "adal"})
	svc := NewUserService(repo)

	users, total, err := svc.List(context.Background(), dto.ListUsersQuery{Page: -2, PerPage: 0})
	require.NoError(t, err)

	assert.Len(t, users, 1)
	assert.Equal(t, int64(1), total)
}

func TestUserDelete(t *testing.T) {
	repo := newFakeUserRepo()
	user := repo.add(&entity.User{Nickname: "adal"})
	svc := NewUserService(repo)

	require.NoError(t, svc.Delete(context.Background(), user.ID))
	assert.Empty(t, repo.users)
}

func TestUserDeleteUnknown(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.Delete(context.Background(), uuid.New())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
	assert.Equal(t, "User not found", appErr.Message)
}
