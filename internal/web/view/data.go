package view

import (
	"time"

	"github.com/cinelog/cinelog/internal/model"
)

// FlashMessage is a one-shot notification shown on the next page load.
// Type is one of "success", "error", "info".
type FlashMessage struct {
	Type    string
	Message string
}

// PageData carries the fields every page needs for the layout
type PageData struct {
	Title   string
	Account *model.Account // nil for anonymous visitors
	Flash   *FlashMessage
}

// HomeData is the data for the review list page
type HomeData struct {
	PageData
	Reviews []ReviewItem
	Search  string
	Rating  string
	Order   string
}

// ReviewItem is one review in a list or detail view
type ReviewItem struct {
	ID         string
	MovieTitle string
	Content    string
	Rating     int
	Author     string
	CreatedAt  time.Time
	IsOwn      bool
}

// ReviewDetailData is the data for the review detail page
type ReviewDetailData struct {
	PageData
	Review ReviewItem
}

// ReviewFormData is the data for the new/edit review form.
// FieldErrors re-renders the form with per-field messages on
// validation failure; Values preserves the rejected input.
type ReviewFormData struct {
	PageData
	Editing     bool
	ReviewID    string
	MovieTitle  string
	Content     string
	Rating      string
	FieldErrors map[string]string
}

// ReviewDeleteData is the data for the delete confirmation page
type ReviewDeleteData struct {
	PageData
	Review ReviewItem
}

// LoginData is the data for the login page
type LoginData struct {
	PageData
	Username string
	Error    string
	Next     string
}

// RegisterData is the data for the registration page
type RegisterData struct {
	PageData
	Username    string
	Email       string
	FieldErrors map[string]string
}

// ProfileData is the data for the account profile page
type ProfileData struct {
	PageData
	Username    string
	Email       string
	ReviewCount int
	FieldErrors map[string]string
}
