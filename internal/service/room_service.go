package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roomshare/roomshare/internal/dto"
	"github.com/roomshare/roomshare/internal/model"
	"github.com/roomshare/roomshare/internal/repository"
	"github.com/roomshare/roomshare/pkg/apperror"
	"github.com/roomshare/roomshare/pkg/logger"
)

type RoomService interface {
	Create(ctx context.Context, creatorID uuid.UUID, req dto.CreateRoomRequest) (*dto.CreateRoomResponse, error)
	Join(ctx context.Context, userID uuid.UUID, req dto.JoinRoomRequest) (*dto.JoinRoomResponse, error)
	Leave(ctx context.Context, userID, roomID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]dto.RoomSummary, error)
	GetInfo(ctx context.Context, userID, roomID uuid.UUID) (*dto.RoomInfo, error)
	Delete(ctx context.Context, userID, roomID uuid.UUID) error
}

type roomService struct {
	roomRepo       repository.RoomRepository
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
	cleanup        CleanupService
}

func NewRoomService(
	roomRepo repository.RoomRepository,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
	cleanup CleanupService,
) RoomService {
	return &roomService{
		roomRepo:       roomRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		cleanup:        cleanup,
	}
}

// sweep runs the expiration sweeper opportunistically. A sweep failure must
// not fail the request that triggered it.
func (s *roomService) sweep(ctx context.Context) {
	if _, err := s.cleanup.Sweep(ctx); err != nil {
		logger.S().Errorw("inline sweep failed", "error", err)
	}
}

func (s *roomService) Create(ctx context.Context, creatorID uuid.UUID, req dto.CreateRoomRequest) (*dto.CreateRoomResponse, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.Code)
	if name == "" || code == "" {
		return nil, apperror.New(apperror.ErrInvalidInput, "room name and join code are required")
	}

	creator, err := s.userRepo.FindByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator.Role != model.RoleProfessor {
		return nil, apperror.New(apperror.ErrForbidden, "only professors can create rooms")
	}

	// Sweeping first lets the code of a just-expired room be reused within
	// this same request.
	s.sweep(ctx)

	var expiresAt *time.Time
	if req.TTLHours != nil {
		if *req.TTLHours < 0 {
			return nil, apperror.New(apperror.ErrInvalidInput, "ttl_hours must not be negative")
		}
		t := time.Now().Add(time.Duration(*req.TTLHours) * time.Hour)
		expiresAt = &t
	}

	room := &model.Room{
		Name:      name,
		JoinCode:  code,
		CreatorID: creatorID,
		ExpiresAt: expiresAt,
	}

	if err := s.roomRepo.CreateWithCreator(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(apperror.ErrConflict, "join code already in use")
		}
		return nil, err
	}

	return &dto.CreateRoomResponse{RoomID: room.ID}, nil
}

func (s *roomService) Join(ctx context.Context, userID uuid.UUID, req dto.JoinRoomRequest) (*dto.JoinRoomResponse, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, apperror.New(apperror.ErrInvalidInput, "join code is required")
	}

	s.sweep(ctx)

	room, err := s.roomRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "no room with that join code")
		}
		return nil, err
	}

	if err := s.membershipRepo.Add(ctx, room.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(apperror.ErrConflict, "already a member of this room")
		}
		return nil, err
	}

	return &dto.JoinRoomResponse{RoomID: room.ID, RoomName: room.Name}, nil
}

func (s *roomService) Leave(ctx context.Context, userID, roomID uuid.UUID) error {
	removed, err := s.membershipRepo.Remove(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.New(apperror.ErrInvalidInput, "not a member of this room")
	}
	// A creator leaving keeps the room intact but ownerless; deletion rights
	// are then unreachable through the normal flow.
	return nil
}

func (s *roomService) ListForUser(ctx context.Context, userID uuid.UUID) ([]dto.RoomSummary, error) {
	s.sweep(ctx)

	rooms, err := s.roomRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summary := dto.RoomSummary{
			ID:        room.ID,
			Name:      room.Name,
			JoinCode:  room.JoinCode,
			CreatedAt: room.CreatedAt,
		}
		if room.Creator != nil {
			summary.CreatorName = room.Creator.FullName()
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *roomService) GetInfo(ctx context.Context, userID, roomID uuid.UUID) (*dto.RoomInfo, error) {
	// Membership is checked before existence, so a non-member gets Forbidden
	// even for a room that does not exist. The download path conflates the
	// two instead; the asymmetry is deliberate.
	member, err := s.membershipRepo.IsMember(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperror.New(apperror.ErrForbidden, "not a member of this room")
	}

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "room not found")
		}
		return nil, err
	}

	info := &dto.RoomInfo{
		ID:        room.ID,
		Name:      room.Name,
		JoinCode:  room.JoinCode,
		CreatedAt: room.CreatedAt,
		ExpiresAt: room.ExpiresAt,
		CreatorID: room.CreatorID,
	}
	if room.Creator != nil {
		info.CreatorName = room.Creator.FullName()
	}

	return info, nil
}

func (s *roomService) Delete(ctx context.Context, userID, roomID uuid.UUID) error {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "room not found")
		}
		return err
	}

	if room.CreatorID != userID {
		return apperror.New(apperror.ErrForbidden, "only the room creator can delete it")
	}

	return s.cleanup.PurgeRoom(ctx, roomID)
}
