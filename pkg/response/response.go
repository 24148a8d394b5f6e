package response

import (
	"log"
	"net/http"

	"github.com/Destinytch001/naits-server/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// Error writes the {"success": false, "error": ...} envelope used by the
// auth, user and sponsored-ad endpoints. Internal failures are logged with
// detail and reported with a generic message.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		message = apperror.ErrInternal.Error()
	}

	c.JSON(code, gin.H{"success": false, "error": message})
}

// ItemError writes the {"status": "error", "message": ...} envelope used by
// the faculty-wear endpoints.
func ItemError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		message = apperror.ErrInternal.Error()
	}

	c.JSON(code, gin.H{"status": "error", "message": message})
}
