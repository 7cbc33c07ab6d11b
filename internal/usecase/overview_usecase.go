package usecase

import (
	"context"
	"errors"

	"nueracare-api/internal/converter"
	"nueracare-api/internal/delivery/dto"
	"nueracare-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

type OverviewUsecase interface {
	GetOverview(ctx context.Context, userID string) (*dto.OverviewResponse, error)
}

type overviewUsecase struct {
	log                  *logrus.Logger
	onboardingUsecase    OnboardingUsecase
	userProfileUsecase   UserProfileUsecase
	sessionRouterUsecase SessionRouterUsecase
}

func NewOverviewUsecase(
	log *logrus.Logger,
	onboardingUsecase OnboardingUsecase,
	userProfileUsecase UserProfileUsecase,
	sessionRouterUsecase SessionRouterUsecase,
) OverviewUsecase {
	return &overviewUsecase{
		log:                  log,
		onboardingUsecase:    onboardingUsecase,
		userProfileUsecase:   userProfileUsecase,
		sessionRouterUsecase: sessionRouterUsecase,
	}
}

// GetOverview loads the route, onboarding record and profile concurrently.
// Missing documents are reported as null; any other failure fails the call.
func (u *overviewUsecase) GetOverview(ctx context.Context, userID string) (*dto.OverviewResponse, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	resp := &dto.OverviewResponse{}
	p := pool.New().WithErrors().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		route := u.sessionRouterUsecase.Resolve(ctx, entity.SessionState{
			IsSessionLoaded: true,
			IsSignedIn:      true,
			UserID:          userID,
		})
		resp.Route = *route
		return nil
	})

	p.Go(func(ctx context.Context) error {
		data, err := u.onboardingUsecase.GetOnboardingData(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrOnboardingNotFound) {
				return nil
			}
			return err
		}
		resp.Onboarding = converter.OnboardingToResponse(data)
		return nil
	})

	p.Go(func(ctx context.Context) error {
		profile, err := u.userProfileUsecase.GetUserProfile(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrProfileNotFound) {
				return nil
			}
			return err
		}
		resp.Profile = profile
		return nil
	})

	if err := p.Wait(); err != nil {
		u.log.Warnf("Failed to load overview: %+v", err)
		return nil, err
	}

	return resp, nil
}
