package handler

import (
	"errors"
	"net/http"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/service"
	"github.com/Destinytch001/naits-server/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth     service.AuthService
	presence service.PresenceService
}

func NewAuthHandler(auth service.AuthService, presence service.PresenceService) *AuthHandler {
	return &AuthHandler{auth: auth, presence: presence}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data provided"})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Validation failed",
				"details": validationErr.Details,
			})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    dto.NewUserResponse(user),
		"message": "Registration successful",
	})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Nickname and password are required"})
		return
	}

	signed, user, err := h.auth.Signin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   signed,
		"user":    dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) Heartbeat(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.presence.Heartbeat(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
