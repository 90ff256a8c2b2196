package http

import (
	"net/http"

	"vr-therapy-platform/internal/delivery/http/handler"
	"vr-therapy-platform/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	patientHandler       *handler.PatientHandler
	sessionReportHandler *handler.SessionReportHandler
	vrSceneHandler       *handler.VRSceneHandler
	onboardingHandler    *handler.OnboardingHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	sessionReportHandler *handler.SessionReportHandler,
	vrSceneHandler *handler.VRSceneHandler,
	onboardingHandler *handler.OnboardingHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		patientHandler:       patientHandler,
		sessionReportHandler: sessionReportHandler,
		vrSceneHandler:       vrSceneHandler,
		onboardingHandler:    onboardingHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/therapist/login", r.authHandler.LoginTherapist).Methods(http.MethodPost)
	auth.HandleFunc("/guardian/login", r.authHandler.LoginGuardian).Methods(http.MethodPost)
	auth.HandleFunc("/session", r.authHandler.GetSession).Methods(http.MethodGet)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetMe).Methods(http.MethodGet)

	// Shared routes (any authenticated role)
	api.Handle("/scenes", r.authenticated(r.vrSceneHandler.GetScenes)).Methods(http.MethodGet)
	api.Handle("/scenes/{id}", r.authenticated(r.vrSceneHandler.GetScene)).Methods(http.MethodGet)
	api.Handle("/onboarding/questions", r.authenticated(r.onboardingHandler.GetQuestions)).Methods(http.MethodGet)
	api.Handle("/audit-logs", r.authenticated(r.auditLogHandler.GetMyAuditLogs)).Methods(http.MethodGet)

	// Therapist routes
	therapist := api.PathPrefix("/therapist").Subrouter()
	therapist.Use(r.authMiddleware.Authenticate)
	therapist.Use(middleware.RequireTherapist)

	therapist.HandleFunc("/patients", r.patientHandler.GetMyPatients).Methods(http.MethodGet)
	therapist.HandleFunc("/patients", r.patientHandler.EnrollPatient).Methods(http.MethodPost)
	therapist.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	therapist.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPatch)
	therapist.HandleFunc("/patients/{id}/progress", r.patientHandler.GetProgress).Methods(http.MethodGet)
	therapist.HandleFunc("/patients/{id}/reports", r.patientHandler.GetReports).Methods(http.MethodGet)
	therapist.HandleFunc("/patients/{id}/reports/latest", r.sessionReportHandler.GetLatestReport).Methods(http.MethodGet)
	therapist.HandleFunc("/patients/{id}/reports/export", r.patientHandler.ExportReports).Methods(http.MethodGet)

	therapist.HandleFunc("/patients/{id}/onboarding", r.onboardingHandler.GetProgress).Methods(http.MethodGet)
	therapist.HandleFunc("/patients/{id}/onboarding/start", r.onboardingHandler.Start).Methods(http.MethodPost)
	therapist.HandleFunc("/patients/{id}/onboarding/answer", r.onboardingHandler.SelectAnswer).Methods(http.MethodPost)
	therapist.HandleFunc("/patients/{id}/onboarding/next", r.onboardingHandler.Advance).Methods(http.MethodPost)
	therapist.HandleFunc("/patients/{id}/onboarding/back", r.onboardingHandler.Retreat).Methods(http.MethodPost)
	therapist.HandleFunc("/patients/{id}/onboarding/result", r.onboardingHandler.GetResult).Methods(http.MethodGet)

	therapist.HandleFunc("/reports", r.sessionReportHandler.CreateReport).Methods(http.MethodPost)
	therapist.HandleFunc("/reports", r.sessionReportHandler.GetMyReports).Methods(http.MethodGet)

	// Guardian routes, scoped to the guardian's own patient
	guardian := api.PathPrefix("/guardian").Subrouter()
	guardian.Use(r.authMiddleware.Authenticate)
	guardian.Use(middleware.RequireGuardian)

	guardian.HandleFunc("/patient", r.patientHandler.GetPatient).Methods(http.MethodGet)
	guardian.HandleFunc("/progress", r.patientHandler.GetProgress).Methods(http.MethodGet)
	guardian.HandleFunc("/reports", r.patientHandler.GetReports).Methods(http.MethodGet)
	guardian.HandleFunc("/reports/latest", r.sessionReportHandler.GetLatestReport).Methods(http.MethodGet)

	guardian.HandleFunc("/onboarding", r.onboardingHandler.GetProgress).Methods(http.MethodGet)
	guardian.HandleFunc("/onboarding/start", r.onboardingHandler.Start).Methods(http.MethodPost)
	guardian.HandleFunc("/onboarding/answer", r.onboardingHandler.SelectAnswer).Methods(http.MethodPost)
	guardian.HandleFunc("/onboarding/next", r.onboardingHandler.Advance).Methods(http.MethodPost)
	guardian.HandleFunc("/onboarding/back", r.onboardingHandler.Retreat).Methods(http.MethodPost)
	guardian.HandleFunc("/onboarding/result", r.onboardingHandler.GetResult).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) authenticated(h http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(h)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
