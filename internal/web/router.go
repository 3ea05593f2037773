package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cinelog/cinelog/internal/services/account"
	"github.com/cinelog/cinelog/internal/services/auth"
	"github.com/cinelog/cinelog/internal/services/review"
	"github.com/cinelog/cinelog/internal/web/handler"
	"github.com/cinelog/cinelog/internal/web/middleware"
	"github.com/cinelog/cinelog/internal/web/view"
)

//go:embed static
var staticFiles embed.FS

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	AccountService *account.Service
	ReviewService  *review.Service
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	v, err := view.New()
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.ReviewService, cfg.AccountService, v)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.AccountService, v)
	reviewHandler := handler.NewReviewHandler(cfg.ReviewService, cfg.AccountService, v)
	accountHandler := handler.NewAccountHandler(cfg.AccountService, cfg.ReviewService, cfg.AuthService, v)

	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public routes (optional auth for showing account info in nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require auth). Registered before the detail
	// route so /reviews/new is not captured by /reviews/{id}.
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/reviews/new", reviewHandler.NewForm).Methods(http.MethodGet)
	protected.HandleFunc("/reviews/new", reviewHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{id}/edit", reviewHandler.EditForm).Methods(http.MethodGet)
	protected.HandleFunc("/reviews/{id}/edit", reviewHandler.Update).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{id}/delete", reviewHandler.DeletePage).Methods(http.MethodGet)
	protected.HandleFunc("/reviews/{id}/delete", reviewHandler.Delete).Methods(http.MethodPost)
	protected.HandleFunc("/profile", accountHandler.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", accountHandler.Update).Methods(http.MethodPost)
	protected.HandleFunc("/profile/delete", accountHandler.Delete).Methods(http.MethodPost)

	// Review detail is open to anonymous visitors
	detail := r.NewRoute().Subrouter()
	detail.Use(flashMiddleware)
	detail.Use(optionalAuthMiddleware)
	detail.HandleFunc("/reviews/{id}", reviewHandler.Detail).Methods(http.MethodGet)

	return r, nil
}
