package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/roomshare/roomshare/internal/repository"
	"github.com/roomshare/roomshare/pkg/logger"
	"github.com/roomshare/roomshare/pkg/storage"
)

// CleanupService is the expiration sweeper. It runs inline before room
// creation, join and listing, and on demand via the admin endpoint.
type CleanupService interface {
	// Sweep purges every room whose deadline has passed and returns how many
	// were removed. A failure on one room is logged and skipped so it cannot
	// block cleanup of the rest.
	Sweep(ctx context.Context) (int, error)
	// PurgeRoom cascades the deletion of one room: file rows, memberships and
	// the room row in one transaction, then the blobs. Purging an already-gone
	// room is a silent no-op, which makes concurrent sweeps and explicit
	// deletes safe against each other.
	PurgeRoom(ctx context.Context, roomID uuid.UUID) error
}

type cleanupService struct {
	roomRepo repository.RoomRepository
	fileRepo repository.FileRepository
	blobs    storage.BlobStore
}

func NewCleanupService(roomRepo repository.RoomRepository, fileRepo repository.FileRepository, blobs storage.BlobStore) CleanupService {
	return &cleanupService{
		roomRepo: roomRepo,
		fileRepo: fileRepo,
		blobs:    blobs,
	}
}

func (s *cleanupService) Sweep(ctx context.Context) (int, error) {
	expired, err := s.roomRepo.FindExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, room := range expired {
		if err := s.PurgeRoom(ctx, room.ID); err != nil {
			logger.S().Errorw("failed to purge expired room",
				"room_id", room.ID, "join_code", room.JoinCode, "error", err)
			continue
		}
		logger.S().Infow("purged expired room",
			"room_id", room.ID, "join_code", room.JoinCode)
		deleted++
	}

	return deleted, nil
}

func (s *cleanupService) PurgeRoom(ctx context.Context, roomID uuid.UUID) error {
	keys, err := s.fileRepo.ListStorageKeysByRoom(ctx, roomID)
	if err != nil {
		return err
	}

	// Rows go first so no surviving metadata can reference a removed blob.
	// Blobs left behind by a failure below are orphans for later
	// reconciliation, never served.
	if err := s.roomRepo.DeleteCascade(ctx, roomID); err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			logger.S().Warnw("failed to delete blob during room purge",
				"room_id", roomID, "storage_key", key, "error", err)
		}
	}

	return nil
}
