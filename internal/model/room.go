package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is a code-joinable collaboration space. Rooms are hard-deleted, so the
// unique index on JoinCode enforces uniqueness across live rooms only: a code
// becomes reusable the moment its room is deleted or swept.
type Room struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:120;not null" json:"name"`
	JoinCode  string     `gorm:"size:64;uniqueIndex;not null" json:"join_code"`
	CreatorID uuid.UUID  `gorm:"type:uuid;not null" json:"creator_id"`
	Creator   *User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Membership records that a user belongs to a room. The composite primary key
// makes a duplicate join a constraint violation rather than a silent dedupe.
type Membership struct {
	RoomID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"room_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
