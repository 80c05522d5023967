package dto

import (
	"time"

	"github.com/google/uuid"
)

type FileSummary struct {
	ID           uuid.UUID `json:"id"`
	RoomID       uuid.UUID `json:"room_id"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
	UploaderID   uuid.UUID `json:"uploader_id"`
	UploaderName string    `json:"uploader_name"`
}

type UploadFileResponse struct {
	FileID uuid.UUID `json:"file_id"`
}
