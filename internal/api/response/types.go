package response

import (
	"time"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/auth"
)

// Account represents an account in API responses. The credential hash
// is deliberately absent: no read operation ever returns it.
type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromModel converts a model.Account to a response Account
func AccountFromModel(a *model.Account) Account {
	return Account{
		ID:        string(a.ID),
		Username:  a.Username,
		Email:     a.Email,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountList wraps a list of accounts
type AccountList struct {
	Accounts []Account `json:"accounts"`
}

// AccountListFromModels converts a slice of model accounts
func AccountListFromModels(accounts []*model.Account) AccountList {
	out := make([]Account, len(accounts))
	for i, a := range accounts {
		out[i] = AccountFromModel(a)
	}
	return AccountList{Accounts: out}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Account      Account `json:"account"`
	SessionToken string  `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Account:      AccountFromModel(&s.Account),
		SessionToken: s.Token,
	}
}

// Review represents a review in API responses
type Review struct {
	ID         string    `json:"id"`
	MovieTitle string    `json:"movie_title"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	AuthorID   string    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewFromModel converts a model.Review to a response Review
func ReviewFromModel(r *model.Review) Review {
	return Review{
		ID:         string(r.ID),
		MovieTitle: r.MovieTitle,
		Content:    r.Content,
		Rating:     r.Rating,
		AuthorID:   string(r.AuthorID),
		CreatedAt:  r.CreatedAt,
	}
}

// ReviewList wraps a list of reviews
type ReviewList struct {
	Reviews []Review `json:"reviews"`
}

// ReviewListFromModels converts a slice of model reviews
func ReviewListFromModels(reviews []*model.Review) ReviewList {
	out := make([]Review, len(reviews))
	for i, r := range reviews {
		out[i] = ReviewFromModel(r)
	}
	return ReviewList{Reviews: out}
}
