package entity

// SessionState is everything the service consumes from the identity provider.
type SessionState struct {
	IsSessionLoaded bool
	IsSignedIn      bool
	UserID          string
}

// RouteState is the screen stack the client should mount.
type RouteState string

const (
	RouteLoading              RouteState = "loading"
	RouteUnauthenticated      RouteState = "unauthenticated"
	RouteOnboardingIncomplete RouteState = "onboarding_incomplete"
	RouteReady                RouteState = "ready"
)

// Screen stacks
const (
	StackNone       = ""
	StackAuth       = "auth"
	StackOnboarding = "onboarding"
	StackMain       = "main"
)

// Stack returns the screen stack mounted for a route state.
func (r RouteState) Stack() string {
	switch r {
	case RouteUnauthenticated:
		return StackAuth
	case RouteOnboardingIncomplete:
		return StackOnboarding
	case RouteReady:
		return StackMain
	}
	return StackNone
}
