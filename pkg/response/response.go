package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/roomshare/roomshare/pkg/apperror"
	"github.com/roomshare/roomshare/pkg/logger"
)

// GetUserID retrieves the authenticated user ID set by the auth middleware.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// Error writes a standardized error response with a stable machine code.
func Error(c *gin.Context, err error) {
	status := apperror.MapErrorToStatus(err)

	if status == http.StatusInternalServerError {
		logger.S().Errorw("internal error", "path", c.FullPath(), "error", err)
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  apperror.CodeOf(err),
	})
}
