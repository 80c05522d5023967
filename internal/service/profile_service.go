package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roomshare/roomshare/internal/dto"
	"github.com/roomshare/roomshare/internal/model"
	"github.com/roomshare/roomshare/internal/repository"
	"github.com/roomshare/roomshare/pkg/apperror"
)

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Update(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) Update(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	// Email and role are immutable after creation.
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Track = req.Track
	user.IndexNumber = req.IndexNumber

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}
