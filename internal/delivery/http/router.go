package http

import (
	"net/http"

	"nueracare-api/internal/delivery/http/handler"
	"nueracare-api/internal/delivery/http/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	onboardingHandler *handler.OnboardingHandler
	wizardHandler     *handler.WizardHandler
	sessionHandler    *handler.SessionHandler
	profileHandler    *handler.ProfileHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	onboardingHandler *handler.OnboardingHandler,
	wizardHandler *handler.WizardHandler,
	sessionHandler *handler.SessionHandler,
	profileHandler *handler.ProfileHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		onboardingHandler: onboardingHandler,
		wizardHandler:     wizardHandler,
		sessionHandler:    sessionHandler,
		profileHandler:    profileHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

// Setup registers every route. CORS wraps the router so preflight requests
// are answered before route matching.
func (r *Router) Setup() http.Handler {
	r.router.Use(chimw.RequestID)
	r.router.Use(chimw.RealIP)
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(chimw.Recoverer)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Session routing (token optional)
	session := api.PathPrefix("/session").Subrouter()
	session.Use(r.authMiddleware.IdentifySession)
	session.HandleFunc("/route", r.sessionHandler.GetRoute).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/me", r.sessionHandler.GetOverview).Methods(http.MethodGet)

	// Onboarding record
	protected.HandleFunc("/onboarding", r.onboardingHandler.GetOnboarding).Methods(http.MethodGet)
	protected.HandleFunc("/onboarding", r.onboardingHandler.SaveOnboarding).Methods(http.MethodPost)
	protected.HandleFunc("/onboarding", r.onboardingHandler.DeleteOnboarding).Methods(http.MethodDelete)
	protected.HandleFunc("/onboarding/fields", r.onboardingHandler.UpdateField).Methods(http.MethodPatch)
	protected.HandleFunc("/onboarding/complete", r.onboardingHandler.CompleteOnboarding).Methods(http.MethodPost)
	protected.HandleFunc("/onboarding/status", r.onboardingHandler.GetStatus).Methods(http.MethodGet)

	// Onboarding wizard
	protected.HandleFunc("/onboarding/wizard", r.wizardHandler.GetWizard).Methods(http.MethodGet)
	protected.HandleFunc("/onboarding/wizard/steps/{step}", r.wizardHandler.SubmitStep).Methods(http.MethodPost)

	// Profile
	protected.HandleFunc("/profile", r.profileHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", r.profileHandler.UpsertProfile).Methods(http.MethodPut)
	protected.HandleFunc("/profile", r.profileHandler.UpdateProfile).Methods(http.MethodPatch)
	protected.HandleFunc("/profile", r.profileHandler.DeleteProfile).Methods(http.MethodDelete)

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
