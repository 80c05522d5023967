package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roomshare/roomshare/internal/dto"
	"github.com/roomshare/roomshare/internal/model"
	"github.com/roomshare/roomshare/internal/repository"
	"github.com/roomshare/roomshare/pkg/apperror"
	"github.com/roomshare/roomshare/pkg/logger"
	"github.com/roomshare/roomshare/pkg/storage"
	"github.com/roomshare/roomshare/pkg/translit"
)

// Download carries a streamed blob back to the handler. DownloadName is an
// ASCII-safe approximation of OriginalName; the handler transmits both.
type Download struct {
	Content      io.ReadCloser
	Size         int64
	OriginalName string
	DownloadName string
}

type FileService interface {
	List(ctx context.Context, userID, roomID uuid.UUID) ([]dto.FileSummary, error)
	Upload(ctx context.Context, userID, roomID uuid.UUID, originalName string, content io.Reader, size int64) (*dto.UploadFileResponse, error)
	Delete(ctx context.Context, userID, fileID uuid.UUID) error
	Download(ctx context.Context, userID, fileID uuid.UUID) (*Download, error)
}

type fileService struct {
	fileRepo       repository.FileRepository
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
	blobs          storage.BlobStore
}

func NewFileService(
	fileRepo repository.FileRepository,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
	blobs storage.BlobStore,
) FileService {
	return &fileService{
		fileRepo:       fileRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		blobs:          blobs,
	}
}

func (s *fileService) requireMember(ctx context.Context, roomID, userID uuid.UUID) error {
	member, err := s.membershipRepo.IsMember(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if !member {
		return apperror.New(apperror.ErrForbidden, "not a member of this room")
	}
	return nil
}

func (s *fileService) List(ctx context.Context, userID, roomID uuid.UUID) ([]dto.FileSummary, error) {
	if err := s.requireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.FileSummary, 0, len(files))
	for _, file := range files {
		summary := dto.FileSummary{
			ID:           file.ID,
			RoomID:       file.RoomID,
			OriginalName: file.OriginalName,
			Size:         file.Size,
			UploadedAt:   file.UploadedAt,
			UploaderID:   file.UploaderID,
		}
		if file.Uploader != nil {
			summary.UploaderName = file.Uploader.FullName()
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *fileService) Upload(ctx context.Context, userID, roomID uuid.UUID, originalName string, content io.Reader, size int64) (*dto.UploadFileResponse, error) {
	if err := s.requireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(originalName) == "" {
		return nil, apperror.New(apperror.ErrInvalidInput, "filename is required")
	}

	key := uuid.NewString()

	// Blob first, metadata second: an interrupted upload leaves at worst an
	// orphaned blob, never a metadata row pointing at nothing.
	if err := s.blobs.Put(ctx, key, content); err != nil {
		return nil, err
	}

	file := &model.File{
		RoomID:       roomID,
		UploaderID:   userID,
		OriginalName: originalName,
		StorageKey:   key,
		Size:         size,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			logger.S().Warnw("failed to remove blob after metadata insert failure",
				"storage_key", key, "error", delErr)
		}
		return nil, err
	}

	return &dto.UploadFileResponse{FileID: file.ID}, nil
}

func (s *fileService) Delete(ctx context.Context, userID, fileID uuid.UUID) error {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "file not found")
		}
		return err
	}

	if err := s.requireMember(ctx, file.RoomID, userID); err != nil {
		return err
	}

	if file.UploaderID != userID {
		requester, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		// A professor may delete any file in a room they belong to.
		if requester.Role != model.RoleProfessor {
			return apperror.New(apperror.ErrForbidden, "you can only delete your own files")
		}
	}

	// A missing blob counts as already deleted; any other storage failure is
	// logged and the metadata row is removed regardless, leaving at worst an
	// orphaned blob for reconciliation.
	if err := s.blobs.Delete(ctx, file.StorageKey); err != nil {
		logger.S().Warnw("failed to delete blob",
			"file_id", file.ID, "storage_key", file.StorageKey, "error", err)
	}

	return s.fileRepo.Delete(ctx, file.ID)
}

func (s *fileService) Download(ctx context.Context, userID, fileID uuid.UUID) (*Download, error) {
	// One joined lookup: a missing file and a missing membership both come
	// back as NotFound, unlike the room-info path.
	file, err := s.fileRepo.FindForMember(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "file not found")
		}
		return nil, err
	}

	content, err := s.blobs.Get(ctx, file.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "file content is missing")
		}
		return nil, err
	}

	return &Download{
		Content:      content,
		Size:         file.Size,
		OriginalName: file.OriginalName,
		DownloadName: translit.DownloadName(file.OriginalName),
	}, nil
}
