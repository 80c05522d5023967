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

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration successful"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
