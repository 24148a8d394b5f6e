package handler

import (
	"net/http"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/service"
	"github.com/Destinytch001/naits-server/pkg/response"
	"github.com/Destinytch001/naits-server/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	users    service.UserService
	auth     service.AuthService
	presence service.PresenceService
}

func NewUserHandler(users service.UserService, auth service.AuthService, presence service.PresenceService) *UserHandler {
	return &UserHandler{users: users, auth: auth, presence: presence}
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	var q dto.ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	users, total, err := h.users.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	sanitized := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, dto.NewUserResponse(user))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"users":    sanitized,
		"total":    total,
		"page":     q.Page,
		"per_page": q.PerPage,
	})
}

func (h *UserHandler) GetUserStatus(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid user ID"})
		return
	}

	status, err := h.presence.Status(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid user ID"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}

func (h *UserHandler) BulkCreateUsers(c *gin.Context) {
	var reqs []dto.SignupRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid data: Expected a list of user objects"})
		return
	}

	resp, err := h.auth.BulkCreate(c.Request.Context(), reqs)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
