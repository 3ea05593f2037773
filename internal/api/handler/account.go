package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cinelog/cinelog/internal/api/middleware"
	"github.com/cinelog/cinelog/internal/api/request"
	"github.com/cinelog/cinelog/internal/api/response"
	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/account"
	"github.com/cinelog/cinelog/internal/services/auth"
)

// AccountHandler handles account endpoints
type AccountHandler struct {
	accountService *account.Service
	authService    *auth.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *account.Service, authService *auth.Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		authService:    authService,
	}
}

// Register handles POST /api/v1/accounts/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	acct, err := h.accountService.Register(r.Context(), account.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	session := h.authService.CreateSession(acct)
	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/accounts/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/accounts/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSession(r.Context()); session != nil {
		h.authService.InvalidateSession(session.Token)
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/accounts/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	acct := middleware.MustGetAccount(r.Context())
	response.JSON(w, http.StatusOK, response.AccountFromModel(acct))
}

// List handles GET /api/v1/accounts
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AccountListFromModels(accounts))
}

// Create handles POST /api/v1/accounts
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetAccount(r.Context())

	var req request.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	acct, err := h.accountService.Create(r.Context(), caller, account.CreateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AccountFromModel(acct))
}

// Get handles GET /api/v1/accounts/{id}
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.AccountID(mux.Vars(r)["id"])

	acct, err := h.accountService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AccountFromModel(acct))
}

// Update handles PATCH /api/v1/accounts/{id}
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetAccount(r.Context())
	id := model.AccountID(mux.Vars(r)["id"])

	var req request.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	acct, err := h.accountService.Update(r.Context(), caller, id, account.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	// A changed password kills the account's other sessions. The
	// caller's own session survives; an admin reset kills them all.
	if req.Password != "" {
		if session := middleware.GetSession(r.Context()); session != nil && caller.ID == id {
			h.authService.InvalidateOtherSessions(id, session.Token)
		} else {
			h.authService.InvalidateAccountSessions(id)
		}
	}

	response.JSON(w, http.StatusOK, response.AccountFromModel(acct))
}

// Delete handles DELETE /api/v1/accounts/{id}
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetAccount(r.Context())
	id := model.AccountID(mux.Vars(r)["id"])

	if err := h.accountService.Delete(r.Context(), caller, id); err != nil {
		WriteError(w, err)
		return
	}

	h.authService.InvalidateAccountSessions(id)
	response.NoContent(w)
}
