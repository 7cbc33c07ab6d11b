package usecase

import (
	"context"
	"testing"

	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"
	repoImpl "nueracare-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouterFixture() (SessionRouterUsecase, *onboardingUsecase, *mockStore) {
	store := newMockStore()
	onboarding := NewOnboardingUsecase(quietLogger(), repoImpl.NewOnboardingRepository(store)).(*onboardingUsecase)
	return NewSessionRouterUsecase(quietLogger(), onboarding), onboarding, store
}

func TestSessionRouter_States(t *testing.T) {
	router, onboarding, store := newRouterFixture()
	ctx := context.Background()

	assert.Equal(t, entity.RouteLoading, router.Evaluate(ctx, entity.SessionState{}))
	assert.Equal(t, entity.RouteLoading, router.Evaluate(ctx, entity.SessionState{IsSignedIn: true, UserID: "u1"}))
	assert.Equal(t, int32(0), store.fetches.Load(), "no gate check before the session resolves")

	assert.Equal(t, entity.RouteUnauthenticated, router.Evaluate(ctx, entity.SessionState{IsSessionLoaded: true}))
	assert.Equal(t, entity.RouteUnauthenticated, router.Evaluate(ctx, entity.SessionState{IsSessionLoaded: true, IsSignedIn: true}))

	signedIn := entity.SessionState{IsSessionLoaded: true, IsSignedIn: true, UserID: "u1"}
	assert.Equal(t, entity.RouteOnboardingIncomplete, router.Evaluate(ctx, signedIn))

	require.NoError(t, onboarding.SaveOnboardingData(ctx, "u1", seedRecord()))
	assert.Equal(t, entity.RouteOnboardingIncomplete, router.Evaluate(ctx, signedIn))

	require.NoError(t, onboarding.CompleteOnboarding(ctx, "u1"))
	assert.Equal(t, entity.RouteReady, router.Evaluate(ctx, signedIn))

	assert.Equal(t, entity.RouteOnboardingIncomplete, router.Evaluate(ctx, entity.SessionState{IsSessionLoaded: true, IsSignedIn: true, UserID: "u2"}))
}

func TestSessionRouter_ReevaluatesEveryCall(t *testing.T) {
	router, onboarding, store := newRouterFixture()
	ctx := context.Background()
	signedIn := entity.SessionState{IsSessionLoaded: true, IsSignedIn: true, UserID: "u1"}
	require.NoError(t, onboarding.SaveOnboardingData(ctx, "u1", seedRecord()))
	require.NoError(t, onboarding.CompleteOnboarding(ctx, "u1"))

	assert.Equal(t, entity.RouteReady, router.Evaluate(ctx, signedIn))

	store.FetchFunc = func(ctx context.Context, q repository.Query) (entity.Document, error) {
		return nil, repository.NewStoreError(repository.ErrNetwork, "fetch", "", nil)
	}
	assert.Equal(t, entity.RouteOnboardingIncomplete, router.Evaluate(ctx, signedIn), "gate fails closed")

	store.FetchFunc = nil
	assert.Equal(t, entity.RouteReady, router.Evaluate(ctx, signedIn))
	assert.Equal(t, int32(3), store.fetches.Load())
}

func TestSessionRouter_CancelledContextIsLoading(t *testing.T) {
	router, _, store := newRouterFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state := router.Evaluate(ctx, entity.SessionState{IsSessionLoaded: true, IsSignedIn: true, UserID: "u1"})
	assert.Equal(t, entity.RouteLoading, state)
	assert.Equal(t, int32(0), store.fetches.Load())
}

func TestSessionRouter_Resolve(t *testing.T) {
	router, _, _ := newRouterFixture()
	ctx := context.Background()

	resp := router.Resolve(ctx, entity.SessionState{IsSessionLoaded: true})
	assert.Equal(t, "unauthenticated", resp.State)
	assert.Equal(t, entity.StackAuth, resp.Stack)
	assert.Empty(t, resp.UserID)

	resp = router.Resolve(ctx, entity.SessionState{IsSessionLoaded: true, IsSignedIn: true, UserID: "u1"})
	assert.Equal(t, "onboarding_incomplete", resp.State)
	assert.Equal(t, entity.StackOnboarding, resp.Stack)
	assert.Equal(t, "u1", resp.UserID)
}
