package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/roomshare/roomshare/internal/dto"
	"github.com/roomshare/roomshare/internal/service"
	"github.com/roomshare/roomshare/pkg/apperror"
	"github.com/roomshare/roomshare/pkg/response"
	"github.com/roomshare/roomshare/pkg/validator"
)

type RoomHandler struct {
	service service.RoomService
}

func NewRoomHandler(service service.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *RoomHandler) JoinRoom(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.Join(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	rooms, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoomInfo(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, "invalid room id"))
		return
	}

	info, err := h.service.GetInfo(c.Request.Context(), userID, roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, "invalid room id"))
		return
	}

	if err := h.service.Leave(c.Request.Context(), userID, roomID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "left room"})
}

func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, "invalid room id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, roomID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}
