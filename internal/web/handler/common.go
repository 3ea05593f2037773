package handler

import (
	"context"
	"net/http"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/account"
	"github.com/cinelog/cinelog/internal/web/middleware"
	"github.com/cinelog/cinelog/internal/web/view"
)

// Display labels for validation messages, keyed by field name
var fieldLabels = map[string]string{
	"username":    "Username",
	"email":       "Email",
	"password":    "Password",
	"movie_title": "Movie title",
	"content":     "Review text",
	"rating":      "Rating",
}

// fieldErrorMessages turns a validation error into per-field display
// messages for form re-rendering
func fieldErrorMessages(verr *model.ValidationError) map[string]string {
	messages := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		label, ok := fieldLabels[f.Field]
		if !ok {
			label = f.Field
		}
		// Keep the first message per field
		if _, exists := messages[f.Field]; !exists {
			messages[f.Field] = label + " " + f.Reason
		}
	}
	return messages
}

// pageData assembles the layout fields shared by every page
func pageData(r *http.Request, title string) view.PageData {
	return view.PageData{
		Title:   title,
		Account: middleware.GetAccount(r.Context()),
		Flash:   middleware.GetFlash(r.Context()),
	}
}

// reviewItems converts reviews into display items, resolving author
// usernames and marking the current account's own reviews
func reviewItems(ctx context.Context, accounts *account.Service, current *model.Account, reviews []*model.Review) []view.ReviewItem {
	names := make(map[model.AccountID]string)
	items := make([]view.ReviewItem, 0, len(reviews))
	for _, rev := range reviews {
		name, ok := names[rev.AuthorID]
		if !ok {
			if author, err := accounts.Get(ctx, rev.AuthorID); err == nil {
				name = author.Username
			} else {
				name = "unknown"
			}
			names[rev.AuthorID] = name
		}
		items = append(items, view.ReviewItem{
			ID:         string(rev.ID),
			MovieTitle: rev.MovieTitle,
			Content:    rev.Content,
			Rating:     rev.Rating,
			Author:     name,
			CreatedAt:  rev.CreatedAt,
			IsOwn:      current != nil && current.ID == rev.AuthorID,
		})
	}
	return items
}
