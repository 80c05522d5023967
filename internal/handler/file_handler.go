package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/roomshare/roomshare/internal/service"
	"github.com/roomshare/roomshare/pkg/apperror"
	"github.com/roomshare/roomshare/pkg/response"
)

type FileHandler struct {
	service        service.FileService
	maxUploadBytes int64
}

func NewFileHandler(service service.FileService, maxUploadBytes int64) *FileHandler {
	return &FileHandler{service: service, maxUploadBytes: maxUploadBytes}
}

func (h *FileHandler) ListFiles(c *gin.Context) {
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

	files, err := h.service.List(c.Request.Context(), userID, roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, files)
}

func (h *FileHandler) UploadFile(c *gin.Context) {
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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, "file field is required"))
		return
	}

	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		response.Error(c, apperror.New(apperror.ErrInvalidInput,
			fmt.Sprintf("file exceeds the maximum size of %d MB", h.maxUploadBytes>>20)))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	resp, err := h.service.Upload(c.Request.Context(), userID, roomID, fileHeader.Filename, f, fileHeader.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *FileHandler) DeleteFile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, "invalid file id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, fileID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}

func (h *FileHandler) DownloadFile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(apperror.ErrInvalidInput, "invalid file id"))
		return
	}

	dl, err := h.service.Download(c.Request.Context(), userID, fileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer dl.Content.Close()

	// filename is the ASCII fallback; filename* carries the exact original
	// name for clients that understand RFC 5987.
	disposition := fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`,
		dl.DownloadName, url.PathEscape(dl.OriginalName))

	c.DataFromReader(http.StatusOK, dl.Size, "application/octet-stream", dl.Content, map[string]string{
		"Content-Disposition": disposition,
	})
}
