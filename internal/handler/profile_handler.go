package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomshare/roomshare/internal/dto"
	"github.com/roomshare/roomshare/internal/service"
	"github.com/roomshare/roomshare/pkg/apperror"
	"github.com/roomshare/roomshare/pkg/response"
	"github.com/roomshare/roomshare/pkg/validator"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	user, err := h.service.Update(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
