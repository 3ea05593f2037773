package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cinelog/cinelog/internal/api/middleware"
	"github.com/cinelog/cinelog/internal/api/request"
	"github.com/cinelog/cinelog/internal/api/response"
	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/review"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviewService *review.Service
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *review.Service) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// List handles GET /api/v1/reviews
//
// Query parameters: movie_title (exact), rating (exact, 1-5), search
// (substring over title and content), order (created|rating), desc.
// Malformed values are rejected as invalid requests rather than
// silently ignored.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReviewFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	reviews, err := h.reviewService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ReviewListFromModels(reviews))
}

// Create handles POST /api/v1/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetAccount(r.Context())

	var req request.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.reviewService.Create(r.Context(), caller, review.Input{
		MovieTitle: req.MovieTitle,
		Content:    req.Content,
		Rating:     req.Rating,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ReviewFromModel(created))
}

// Get handles GET /api/v1/reviews/{id}
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.ReviewID(mux.Vars(r)["id"])

	rev, err := h.reviewService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ReviewFromModel(rev))
}

// Update handles PATCH /api/v1/reviews/{id}
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetAccount(r.Context())
	id := model.ReviewID(mux.Vars(r)["id"])

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.reviewService.Update(r.Context(), caller, id, review.UpdateInput{
		MovieTitle: req.MovieTitle,
		Content:    req.Content,
		Rating:     req.Rating,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ReviewFromModel(updated))
}

// Delete handles DELETE /api/v1/reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetAccount(r.Context())
	id := model.ReviewID(mux.Vars(r)["id"])

	if err := h.reviewService.Delete(r.Context(), caller, id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func parseReviewFilter(r *http.Request) (model.ReviewFilter, error) {
	var filter model.ReviewFilter
	q := r.URL.Query()

	if title := q.Get("movie_title"); title != "" {
		filter.MovieTitle = &title
	}
	if ratingStr := q.Get("rating"); ratingStr != "" {
		rating, err := strconv.Atoi(ratingStr)
		if err != nil || rating < model.MinRating || rating > model.MaxRating {
			return filter, NewInvalidRequestError("rating must be an integer between 1 and 5")
		}
		filter.Rating = &rating
	}
	filter.Search = q.Get("search")

	switch q.Get("order") {
	case "", string(model.OrderByCreated):
		filter.OrderBy = model.OrderByCreated
	case string(model.OrderByRating):
		filter.OrderBy = model.OrderByRating
	default:
		return filter, NewInvalidRequestError("order must be 'created' or 'rating'")
	}

	if descStr := q.Get("desc"); descStr != "" {
		desc, err := strconv.ParseBool(descStr)
		if err != nil {
			return filter, NewInvalidRequestError("desc must be a boolean")
		}
		filter.Descending = desc
	} else {
		// Newest first / highest rated first by default
		filter.Descending = true
	}

	return filter, nil
}
