package dto

// SessionRouteResponse tells the client which screen stack to mount
type SessionRouteResponse struct {
	State  string `json:"state"`
	Stack  string `json:"stack"`
	UserID string `json:"userId,omitempty"`
}

// OverviewResponse bundles everything the home screen needs
type OverviewResponse struct {
	Route      SessionRouteResponse `json:"route"`
	Onboarding *OnboardingResponse  `json:"onboarding"`
	Profile    *ProfileResponse     `json:"profile"`
}
