package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roomshare/roomshare/internal/model"
)

type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.File, error)
	// FindForMember looks up the file and the requester's membership of its
	// room in a single joined query, so "file absent" and "not a member" are
	// indistinguishable to the caller.
	FindForMember(ctx context.Context, fileID, userID uuid.UUID) (*model.File, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]model.File, error)
	ListStorageKeysByRoom(ctx context.Context, roomID uuid.UUID) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.File, error) {
	var file model.File
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) FindForMember(ctx context.Context, fileID, userID uuid.UUID) (*model.File, error) {
	var file model.File
	if err := r.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.room_id = files.room_id").
		Where("files.id = ? AND memberships.user_id = ?", fileID, userID).
		First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]model.File, error) {
	var files []model.File
	err := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("room_id = ?", roomID).
		Order("uploaded_at DESC").
		Find(&files).Error
	return files, err
}

func (r *fileRepository) ListStorageKeysByRoom(ctx context.Context, roomID uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("room_id = ?", roomID).
		Pluck("storage_key", &keys).Error
	return keys, err
}

func (r *fileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.File{}, "id = ?", id).Error
}
