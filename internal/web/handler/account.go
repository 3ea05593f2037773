package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/account"
	"github.com/cinelog/cinelog/internal/services/auth"
	"github.com/cinelog/cinelog/internal/services/review"
	"github.com/cinelog/cinelog/internal/web/middleware"
	"github.com/cinelog/cinelog/internal/web/view"
)

// AccountHandler handles the profile page and account actions
type AccountHandler struct {
	accountService *account.Service
	reviewService  *review.Service
	authService    *auth.Service
	view           *view.View
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *account.Service, reviewService *review.Service, authService *auth.Service, v *view.View) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		reviewService:  reviewService,
		authService:    authService,
		view:           v,
	}
}

// Profile renders the current account's profile page
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetAccount(r.Context())

	data := view.ProfileData{
		PageData:    pageData(r, "Your profile"),
		Username:    current.Username,
		Email:       current.Email,
		ReviewCount: h.countReviews(r, current.ID),
		FieldErrors: make(map[string]string),
	}
	h.view.Render(w, http.StatusOK, view.PageProfile, data)
}

// Update handles the profile form submission. An empty password field
// leaves the password unchanged.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetAccount(r.Context())

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	input := account.UpdateInput{
		Username: &username,
		Email:    &email,
		Password: r.FormValue("password"),
	}

	_, err := h.accountService.Update(r.Context(), current, current.ID, input)
	if err != nil {
		var verr *model.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderProfileError(w, r, current, username, email, fieldErrorMessages(verr))
		case errors.Is(err, model.ErrUsernameExists):
			h.renderProfileError(w, r, current, username, email, map[string]string{
				"username": "Username is already taken",
			})
		default:
			middleware.SetFlash(w, "error", "Update failed, please try again")
			http.Redirect(w, r, "/profile", http.StatusSeeOther)
		}
		return
	}

	// A changed password kills the account's sessions in other
	// browsers; this one stays signed in.
	if input.Password != "" {
		if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
			h.authService.InvalidateOtherSessions(current.ID, cookie.Value)
		}
	}

	middleware.SetFlash(w, "success", "Profile updated")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// Delete removes the current account along with its sessions
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetAccount(r.Context())

	if err := h.accountService.Delete(r.Context(), current, current.ID); err != nil {
		middleware.SetFlash(w, "error", "Could not delete your account, please try again")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	h.authService.InvalidateAccountSessions(current.ID)
	clearSessionCookie(w)

	middleware.SetFlash(w, "info", "Your account has been deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AccountHandler) countReviews(r *http.Request, id model.AccountID) int {
	reviews, err := h.reviewService.List(r.Context(), model.ReviewFilter{})
	if err != nil {
		return 0
	}
	count := 0
	for _, rev := range reviews {
		if rev.AuthorID == id {
			count++
		}
	}
	return count
}

func (h *AccountHandler) renderProfileError(w http.ResponseWriter, r *http.Request, current *model.Account, username, email string, fieldErrors map[string]string) {
	data := view.ProfileData{
		PageData:    pageData(r, "Your profile"),
		Username:    username,
		Email:       email,
		ReviewCount: h.countReviews(r, current.ID),
		FieldErrors: fieldErrors,
	}
	h.view.Render(w, http.StatusOK, view.PageProfile, data)
}
