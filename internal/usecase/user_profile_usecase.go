package usecase

import (
	"context"
	"errors"
	"time"

	"nueracare-api/internal/converter"
	"nueracare-api/internal/delivery/dto"
	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrProfileNotFound = errors.New("user profile not found")
	ErrNothingToUpdate = errors.New("no profile fields to update")
)

type UserProfileUsecase interface {
	UpsertUserProfile(ctx context.Context, userID string, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error)
	GetUserProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateUserProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	DeleteUserProfile(ctx context.Context, userID string) error
}

type userProfileUsecase struct {
	log             *logrus.Logger
	userProfileRepo repository.UserProfileRepository
	now             func() time.Time
}

func NewUserProfileUsecase(log *logrus.Logger, userProfileRepo repository.UserProfileRepository) UserProfileUsecase {
	return &userProfileUsecase{
		log:             log,
		userProfileRepo: userProfileRepo,
		now:             time.Now,
	}
}

// UpsertUserProfile replaces the whole profile. createdAt survives
// replacement.
func (u *userProfileUsecase) UpsertUserProfile(ctx context.Context, userID string, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	existing, err := u.userProfileRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user profile: %+v", err)
		return nil, err
	}

	now := u.now().UTC()
	profile := converter.UpsertRequestToEntity(req)
	profile.UserID = userID
	profile.UpdatedAt = &now
	profile.CreatedAt = &now
	if existing != nil && existing.CreatedAt != nil {
		profile.CreatedAt = existing.CreatedAt
	}

	doc, err := entity.NewDocument(profile)
	if err != nil {
		u.log.Warnf("Failed to encode user profile: %+v", err)
		return nil, repository.NewStoreError(repository.ErrValidation, "createOrReplace", entity.UserProfileID(userID), err)
	}

	if err := u.userProfileRepo.CreateOrReplace(ctx, doc); err != nil {
		u.log.Warnf("Failed to save user profile: %+v", err)
		return nil, err
	}

	profile.ID = entity.UserProfileID(userID)
	profile.Type = entity.DocumentTypeUserProfile
	return converter.ProfileToResponse(profile), nil
}

func (u *userProfileUsecase) GetUserProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	profile, err := u.userProfileRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	return converter.ProfileToResponse(profile), nil
}

// UpdateUserProfile patches the fields present in req.
func (u *userProfileUsecase) UpdateUserProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	fields := converter.UpdateRequestToFields(req)
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}
	fields[entity.FieldUpdatedAt] = u.now().UTC()

	if err := u.userProfileRepo.Patch(ctx, userID, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		u.log.Warnf("Failed to update user profile: %+v", err)
		return nil, err
	}

	return u.GetUserProfile(ctx, userID)
}

func (u *userProfileUsecase) DeleteUserProfile(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	if err := u.userProfileRepo.Delete(ctx, userID); err != nil {
		u.log.Warnf("Failed to delete user profile: %+v", err)
		return err
	}

	return nil
}
