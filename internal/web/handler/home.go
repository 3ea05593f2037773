package handler

import (
	"net/http"
	"strconv"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/account"
	"github.com/cinelog/cinelog/internal/services/review"
	"github.com/cinelog/cinelog/internal/web/middleware"
	"github.com/cinelog/cinelog/internal/web/view"
)

// HomeHandler handles the review list page
type HomeHandler struct {
	reviewService  *review.Service
	accountService *account.Service
	view           *view.View
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(reviewService *review.Service, accountService *account.Service, v *view.View) *HomeHandler {
	return &HomeHandler{
		reviewService:  reviewService,
		accountService: accountService,
		view:           v,
	}
}

// Home renders the review list with optional filters from the query
// string. Unrecognized filter values are ignored rather than rejected.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetAccount(r.Context())

	search := r.URL.Query().Get("search")
	ratingParam := r.URL.Query().Get("rating")
	orderParam := r.URL.Query().Get("order")

	filter := model.ReviewFilter{
		Search:     search,
		OrderBy:    model.OrderByCreated,
		Descending: true,
	}
	if rating, err := strconv.Atoi(ratingParam); err == nil && rating >= model.MinRating && rating <= model.MaxRating {
		filter.Rating = &rating
	} else {
		ratingParam = ""
	}
	if orderParam == string(model.OrderByRating) {
		filter.OrderBy = model.OrderByRating
	} else {
		orderParam = string(model.OrderByCreated)
	}

	reviews, err := h.reviewService.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := view.HomeData{
		PageData: pageData(r, "Movie reviews"),
		Reviews:  reviewItems(r.Context(), h.accountService, current, reviews),
		Search:   search,
		Rating:   ratingParam,
		Order:    orderParam,
	}
	h.view.Render(w, http.StatusOK, view.PageHome, data)
}
