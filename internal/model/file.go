package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is the metadata row for one stored blob. StorageKey addresses the blob
// in the content store and is unrelated to the user-supplied OriginalName.
type File struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID       uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	UploaderID   uuid.UUID `gorm:"type:uuid;not null" json:"uploader_id"`
	Uploader     *User     `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	OriginalName string    `gorm:"size:255;not null" json:"original_name"`
	StorageKey   string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Size         int64     `gorm:"not null" json:"size"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
