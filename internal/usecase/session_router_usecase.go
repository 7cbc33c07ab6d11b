package usecase

import (
	"context"

	"nueracare-api/internal/delivery/dto"
	"nueracare-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// SessionRouterUsecase decides which screen stack the client mounts. Every
// call evaluates afresh; completion is never cached between calls.
type SessionRouterUsecase interface {
	Evaluate(ctx context.Context, session entity.SessionState) entity.RouteState
	Resolve(ctx context.Context, session entity.SessionState) *dto.SessionRouteResponse
}

type sessionRouterUsecase struct {
	log               *logrus.Logger
	onboardingUsecase OnboardingUsecase
}

func NewSessionRouterUsecase(log *logrus.Logger, onboardingUsecase OnboardingUsecase) SessionRouterUsecase {
	return &sessionRouterUsecase{
		log:               log,
		onboardingUsecase: onboardingUsecase,
	}
}

// Evaluate maps the identity session and the completion gate to a route:
// an unresolved session is Loading, no session is Unauthenticated, and a
// signed-in user is Ready only when the gate reports completion.
func (u *sessionRouterUsecase) Evaluate(ctx context.Context, session entity.SessionState) entity.RouteState {
	if !session.IsSessionLoaded {
		return entity.RouteLoading
	}
	if !session.IsSignedIn || session.UserID == "" {
		return entity.RouteUnauthenticated
	}
	if ctx.Err() != nil {
		// Gate check abandoned; nothing decided yet.
		return entity.RouteLoading
	}

	if u.onboardingUsecase.IsOnboardingCompleted(ctx, session.UserID) {
		return entity.RouteReady
	}
	return entity.RouteOnboardingIncomplete
}

func (u *sessionRouterUsecase) Resolve(ctx context.Context, session entity.SessionState) *dto.SessionRouteResponse {
	state := u.Evaluate(ctx, session)
	u.log.WithFields(logrus.Fields{
		"user_id": session.UserID,
		"state":   state,
	}).Debug("Resolved session route")

	resp := &dto.SessionRouteResponse{
		State: string(state),
		Stack: state.Stack(),
	}
	if session.IsSignedIn {
		resp.UserID = session.UserID
	}
	return resp
}
