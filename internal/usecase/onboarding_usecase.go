package usecase

import (
	"context"
	"errors"
	"time"

	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrOnboardingNotFound = errors.New("onboarding record not found")
	ErrMissingUserID      = errors.New("user id is required")
)

// OnboardingUsecase owns every write to the onboarding record and the
// completion gate that reads it back.
type OnboardingUsecase interface {
	// SaveOnboardingData creates or fully replaces the user's record. It is
	// the only operation allowed to create it.
	SaveOnboardingData(ctx context.Context, userID string, data *entity.OnboardingData) error
	// UpdateOnboardingField patches one field path plus updatedAt. Store
	// errors are returned unchanged.
	UpdateOnboardingField(ctx context.Context, userID, fieldPath string, value interface{}) error
	// CompleteOnboarding flags the record complete. Calling it again only
	// moves the timestamps forward.
	CompleteOnboarding(ctx context.Context, userID string) error
	// IsOnboardingCompleted reports true only when the stored flag is true.
	// Any read failure yields false.
	IsOnboardingCompleted(ctx context.Context, userID string) bool
	GetOnboardingData(ctx context.Context, userID string) (*entity.OnboardingData, error)
	DeleteOnboardingData(ctx context.Context, userID string) error
}

type onboardingUsecase struct {
	log            *logrus.Logger
	onboardingRepo repository.OnboardingRepository
	now            func() time.Time
}

func NewOnboardingUsecase(log *logrus.Logger, onboardingRepo repository.OnboardingRepository) OnboardingUsecase {
	return &onboardingUsecase{
		log:            log,
		onboardingRepo: onboardingRepo,
		now:            time.Now,
	}
}

func (u *onboardingUsecase) SaveOnboardingData(ctx context.Context, userID string, data *entity.OnboardingData) error {
	if userID == "" {
		return ErrMissingUserID
	}

	now := u.now().UTC()
	record := *data
	record.ID = ""
	record.Type = ""
	record.UserID = userID
	record.UpdatedAt = &now
	if record.CreatedAt == nil {
		record.CreatedAt = &now
	}
	if record.OnboardingCompleted && record.OnboardingCompletedAt == nil {
		record.OnboardingCompletedAt = &now
	}
	if !record.OnboardingCompleted {
		record.OnboardingCompletedAt = nil
	}

	doc, err := entity.NewDocument(record)
	if err != nil {
		u.log.Warnf("Failed to encode onboarding record: %+v", err)
		return repository.NewStoreError(repository.ErrValidation, "createOrReplace", entity.OnboardingID(userID), err)
	}

	if err := u.onboardingRepo.CreateOrReplace(ctx, doc); err != nil {
		u.log.Warnf("Failed to save onboarding data: %+v", err)
		return err
	}

	return nil
}

func (u *onboardingUsecase) UpdateOnboardingField(ctx context.Context, userID, fieldPath string, value interface{}) error {
	if userID == "" {
		return ErrMissingUserID
	}

	err := u.onboardingRepo.Patch(ctx, userID, map[string]interface{}{
		fieldPath:             value,
		entity.FieldUpdatedAt: u.now().UTC(),
	})
	if err != nil {
		u.log.Warnf("Failed to update onboarding field %s: %+v", fieldPath, err)
		return err
	}

	return nil
}

func (u *onboardingUsecase) CompleteOnboarding(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	now := u.now().UTC()
	err := u.onboardingRepo.Patch(ctx, userID, map[string]interface{}{
		entity.FieldOnboardingCompleted:   true,
		entity.FieldOnboardingCompletedAt: now,
		entity.FieldUpdatedAt:             now,
	})
	if err != nil {
		u.log.Warnf("Failed to complete onboarding: %+v", err)
		return err
	}

	return nil
}

func (u *onboardingUsecase) IsOnboardingCompleted(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}

	data, err := u.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to check onboarding status: %+v", err)
		return false
	}
	if data == nil {
		return false
	}

	return data.OnboardingCompleted
}

func (u *onboardingUsecase) GetOnboardingData(ctx context.Context, userID string) (*entity.OnboardingData, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	data, err := u.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find onboarding data: %+v", err)
		return nil, err
	}
	if data == nil {
		return nil, ErrOnboardingNotFound
	}

	return data, nil
}

func (u *onboardingUsecase) DeleteOnboardingData(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	if err := u.onboardingRepo.Delete(ctx, userID); err != nil {
		u.log.Warnf("Failed to delete onboarding data: %+v", err)
		return err
	}

	return nil
}
