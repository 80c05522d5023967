package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roomshare/roomshare/internal/model"
)

type RoomRepository interface {
	// CreateWithCreator inserts the room and its creator's membership as one
	// transaction. A join-code collision surfaces as gorm.ErrDuplicatedKey
	// from the unique index, never from a check-then-insert.
	CreateWithCreator(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	FindByCode(ctx context.Context, code string) (*model.Room, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Room, error)
	FindExpired(ctx context.Context, now time.Time) ([]model.Room, error)
	// DeleteCascade removes the room's file rows, memberships and the room
	// row in one transaction. Deleting an already-gone room is a no-op.
	DeleteCascade(ctx context.Context, roomID uuid.UUID) error
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) CreateWithCreator(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}

		membership := &model.Membership{
			RoomID: room.ID,
			UserID: room.CreatorID,
		}
		return tx.Create(membership).Error
	})
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("id = ?", id).
		First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByCode(ctx context.Context, code string) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).
		Where("join_code = ?", code).
		First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Joins("JOIN memberships ON memberships.room_id = rooms.id").
		Where("memberships.user_id = ?", userID).
		Order("rooms.created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) FindExpired(ctx context.Context, now time.Time) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) DeleteCascade(ctx context.Context, roomID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&model.File{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", roomID).Delete(&model.Room{}).Error
	})
}
