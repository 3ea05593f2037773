package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/account"
	"github.com/cinelog/cinelog/internal/services/auth"
	"github.com/cinelog/cinelog/internal/web/middleware"
	"github.com/cinelog/cinelog/internal/web/view"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService    *auth.Service
	accountService *account.Service
	view           *view.View
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, accountService *account.Service, v *view.View) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accountService: accountService,
		view:           v,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAccount(r.Context()) != nil {
		// Already logged in
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := view.LoginData{
		PageData: pageData(r, "Log in"),
		Next:     r.URL.Query().Get("next"),
	}
	h.view.Render(w, http.StatusOK, view.PageLogin, data)
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if username == "" || password == "" {
		h.renderLoginError(w, r, "Username and password are required", username, next)
		return
	}

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		h.renderLoginError(w, r, "Invalid username or password", username, next)
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, "success", "Welcome back, "+session.Account.Username+"!")
	redirectAfterAuth(w, r, next)
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAccount(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := view.RegisterData{
		PageData:    pageData(r, "Sign up"),
		FieldErrors: make(map[string]string),
	}
	h.view.Render(w, http.StatusOK, view.PageRegister, data)
}

// Register handles registration form submission. The new account is
// logged in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "", "", nil)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	created, err := h.accountService.Register(r.Context(), account.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		var verr *model.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderRegisterError(w, r, username, email, fieldErrorMessages(verr))
		case errors.Is(err, model.ErrUsernameExists):
			h.renderRegisterError(w, r, username, email, map[string]string{
				"username": "Username is already taken",
			})
		default:
			middleware.SetFlash(w, "error", "Registration failed, please try again")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
		}
		return
	}

	session := h.authService.CreateSession(created)
	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, "success", "Account created! Welcome, "+created.Username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout invalidates the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.InvalidateSession(cookie.Value)
	}
	clearSessionCookie(w)

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func redirectAfterAuth(w http.ResponseWriter, r *http.Request, next string) {
	if next != "" && strings.HasPrefix(next, "/") {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, username, next string) {
	data := view.LoginData{
		PageData: pageData(r, "Log in"),
		Username: username,
		Error:    errorMsg,
		Next:     next,
	}
	h.view.Render(w, http.StatusOK, view.PageLogin, data)
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, username, email string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	data := view.RegisterData{
		PageData:    pageData(r, "Sign up"),
		Username:    username,
		Email:       email,
		FieldErrors: fieldErrors,
	}
	h.view.Render(w, http.StatusOK, view.PageRegister, data)
}
