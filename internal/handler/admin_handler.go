package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomshare/roomshare/internal/service"
	"github.com/roomshare/roomshare/pkg/response"
)

type AdminHandler struct {
	cleanup service.CleanupService
}

func NewAdminHandler(cleanup service.CleanupService) *AdminHandler {
	return &AdminHandler{cleanup: cleanup}
}

// Cleanup triggers the expiration sweeper on demand.
func (h *AdminHandler) Cleanup(c *gin.Context) {
	deleted, err := h.cleanup.Sweep(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "cleanup completed",
		"rooms_deleted": deleted,
	})
}
