package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name string `json:"name" binding:"required,max=120"`
	Code string `json:"code" binding:"required,max=64"`
	// Pointer distinguishes "absent" (never expires) from an explicit value.
	TTLHours *int `json:"ttl_hours"`
}

type CreateRoomResponse struct {
	RoomID uuid.UUID `json:"room_id"`
}

type JoinRoomRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}

type JoinRoomResponse struct {
	RoomID   uuid.UUID `json:"room_id"`
	RoomName string    `json:"room_name"`
}

type RoomSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	JoinCode    string    `json:"join_code"`
	CreatedAt   time.Time `json:"created_at"`
	CreatorName string    `json:"creator_name"`
}

type RoomInfo struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	JoinCode    string     `json:"join_code"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	CreatorName string     `json:"creator_name"`
}
