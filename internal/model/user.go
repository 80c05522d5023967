package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles are fixed; a user's role never changes after creation.
const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
)

// Academic tracks.
const (
	TrackSRT = "SRT"
	TrackKOT = "KOT"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Track        string    `gorm:"size:10;not null" json:"track"`
	IndexNumber  string    `gorm:"size:50;not null" json:"index_number"`
	Role         string    `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName is the display name used in room and file listings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
