package http

import (
	"net/http"

	"farmsight-backend/internal/config"
	"farmsight-backend/internal/security"
	"farmsight-backend/internal/service"
	"farmsight-backend/internal/storage"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Services bundles everything the router exposes over HTTP.
type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Finances  service.FinanceService
	Crops     service.CropService
	Reminders service.ReminderService
	Plots     service.PlotService
	Soil      service.SoilService
	Diagnosis service.DiagnosisService
}

// NewRouter wires every route, the auth middleware, and CORS.
func NewRouter(cfg *config.Config, tokens security.TokenManager, files storage.FileStorage, svcs Services) http.Handler {
	uploads := newUploadPolicy(files, cfg.Storage)

	authHandler := NewAuthHandler(svcs.Auth)
	userHandler := NewUserHandler(svcs.Users)
	financeHandler := NewFinanceHandler(svcs.Finances, files, uploads)
	cropHandler := NewCropHandler(svcs.Crops, files, uploads)
	reminderHandler := NewReminderHandler(svcs.Reminders)
	plotHandler := NewPlotHandler(svcs.Plots, svcs.Soil)
	diagnosisHandler := NewDiagnosisHandler(svcs.Diagnosis, uploads)

	r := mux.NewRouter()
	r.Use(RequestLogger)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Public routes.
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/google", authHandler.GoogleLogin).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodPost)
	auth.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Uploaded images are public by URL; the keys are unguessable.
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.UploadDir))),
	).Methods(http.MethodGet)

	// Everything below requires a valid access token.
	api := r.NewRoute().Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/users/me", userHandler.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/users/me", userHandler.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/users/me", userHandler.DeleteAccount).Methods(http.MethodDelete)

	api.HandleFunc("/finances", financeHandler.Record).Methods(http.MethodPost)
	api.HandleFunc("/finances", financeHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/finances/recompute", financeHandler.Recompute).Methods(http.MethodPost)
	api.HandleFunc("/finances/{id}", financeHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/finances/{id}", financeHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/crops", cropHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/crops", cropHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/crops/{id}", cropHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/crops/{id}", cropHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/crops/{id}", cropHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/reminders", reminderHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/reminders", reminderHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/reminders/{id}", reminderHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/reminders/{id}", reminderHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/plots", plotHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/plots", plotHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/plots/{id}", plotHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/plots/{id}", plotHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/plots/{id}/soil", plotHandler.RecordSoil).Methods(http.MethodPost)
	api.HandleFunc("/plots/{id}/soil", plotHandler.ListSoil).Methods(http.MethodGet)
	api.HandleFunc("/soil/latest", plotHandler.LatestSoil).Methods(http.MethodGet)

	api.HandleFunc("/diagnosis", diagnosisHandler.Diagnose).Methods(http.MethodPost)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	return cors(r)
}
