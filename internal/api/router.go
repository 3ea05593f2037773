package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cinelog/cinelog/internal/api/handler"
	"github.com/cinelog/cinelog/internal/api/middleware"
	"github.com/cinelog/cinelog/internal/services/account"
	"github.com/cinelog/cinelog/internal/services/auth"
	"github.com/cinelog/cinelog/internal/services/review"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	AccountService *account.Service
	ReviewService  *review.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.AccountService, cfg.AuthService)
	reviewHandler := handler.NewReviewHandler(cfg.ReviewService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Sign-up and login (no auth required)
	api.HandleFunc("/accounts/register", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/accounts/login", accountHandler.Login).Methods(http.MethodPost)

	// Protected account routes
	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware)
	authed.HandleFunc("/accounts/logout", accountHandler.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/accounts/me", accountHandler.GetMe).Methods(http.MethodGet)
	authed.HandleFunc("/accounts", accountHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/accounts/{id}", accountHandler.Update).Methods(http.MethodPatch)
	authed.HandleFunc("/accounts/{id}", accountHandler.Delete).Methods(http.MethodDelete)

	// Public account reads
	api.HandleFunc("/accounts", accountHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}", accountHandler.Get).Methods(http.MethodGet)

	// Review routes: reads are anonymous-friendly; writes carry the
	// caller (possibly nil) into the service, which decides. The
	// service layer is the single source of authorization truth.
	reviews := api.PathPrefix("/reviews").Subrouter()
	reviews.Use(optionalAuthMiddleware)
	reviews.HandleFunc("", reviewHandler.List).Methods(http.MethodGet)
	reviews.HandleFunc("", reviewHandler.Create).Methods(http.MethodPost)
	reviews.HandleFunc("/{id}", reviewHandler.Get).Methods(http.MethodGet)
	reviews.HandleFunc("/{id}", reviewHandler.Update).Methods(http.MethodPatch)
	reviews.HandleFunc("/{id}", reviewHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
