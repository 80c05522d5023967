package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roomshare/roomshare/internal/model"
)

type MembershipRepository interface {
	// Add inserts a membership row. A duplicate (room, user) pair surfaces as
	// gorm.ErrDuplicatedKey from the composite primary key.
	Add(ctx context.Context, roomID, userID uuid.UUID) error
	// Remove deletes the membership and reports whether a row existed.
	Remove(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
	// IsMember is the authorization gate for every room- and file-scoped
	// operation.
	IsMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Add(ctx context.Context, roomID, userID uuid.UUID) error {
	membership := &model.Membership{RoomID: roomID, UserID: userID}
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *membershipRepository) Remove(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&model.Membership{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *membershipRepository) IsMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
