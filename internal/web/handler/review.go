package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/account"
	"github.com/cinelog/cinelog/internal/services/review"
	"github.com/cinelog/cinelog/internal/web/middleware"
	"github.com/cinelog/cinelog/internal/web/view"
)

// ReviewHandler handles review pages and actions
type ReviewHandler struct {
	reviewService  *review.Service
	accountService *account.Service
	view           *view.View
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *review.Service, accountService *account.Service, v *view.View) *ReviewHandler {
	return &ReviewHandler{
		reviewService:  reviewService,
		accountService: accountService,
		view:           v,
	}
}

// Detail renders a single review
func (h *ReviewHandler) Detail(w http.ResponseWriter, r *http.Request) {
	rev, ok := h.getReview(w, r)
	if !ok {
		return
	}
	current := middleware.GetAccount(r.Context())

	items := reviewItems(r.Context(), h.accountService, current, []*model.Review{rev})
	data := view.ReviewDetailData{
		PageData: pageData(r, rev.MovieTitle),
		Review:   items[0],
	}
	h.view.Render(w, http.StatusOK, view.PageReviewDetail, data)
}

// NewForm renders the empty review form
func (h *ReviewHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := view.ReviewFormData{
		PageData:    pageData(r, "Write a review"),
		FieldErrors: make(map[string]string),
	}
	h.view.Render(w, http.StatusOK, view.PageReviewForm, data)
}

// Create handles the new review form submission
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, raw, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	current := middleware.GetAccount(r.Context())

	created, err := h.reviewService.Create(r.Context(), current, input)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			data := view.ReviewFormData{
				PageData:    pageData(r, "Write a review"),
				MovieTitle:  input.MovieTitle,
				Content:     input.Content,
				Rating:      raw.rating,
				FieldErrors: fieldErrorMessages(verr),
			}
			h.view.Render(w, http.StatusOK, view.PageReviewForm, data)
			return
		}
		h.redirectServiceError(w, r, err)
		return
	}

	middleware.SetFlash(w, "success", "Review published")
	http.Redirect(w, r, "/reviews/"+string(created.ID), http.StatusSeeOther)
}

// EditForm renders the edit form pre-filled with the review's fields.
// Only the author may edit, so anyone else is turned away here rather
// than on submit.
func (h *ReviewHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	rev, ok := h.getReview(w, r)
	if !ok {
		return
	}
	current := middleware.GetAccount(r.Context())
	if current == nil || current.ID != rev.AuthorID {
		middleware.SetFlash(w, "error", "You can only edit your own reviews")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := view.ReviewFormData{
		PageData:    pageData(r, "Edit review"),
		Editing:     true,
		ReviewID:    string(rev.ID),
		MovieTitle:  rev.MovieTitle,
		Content:     rev.Content,
		Rating:      strconv.Itoa(rev.Rating),
		FieldErrors: make(map[string]string),
	}
	h.view.Render(w, http.StatusOK, view.PageReviewForm, data)
}

// Update handles the edit form submission
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.ReviewID(mux.Vars(r)["id"])
	input, raw, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	current := middleware.GetAccount(r.Context())

	// The edit form always submits every field
	updated, err := h.reviewService.Update(r.Context(), current, id, review.UpdateInput{
		MovieTitle: &input.MovieTitle,
		Content:    &input.Content,
		Rating:     &input.Rating,
	})
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			data := view.ReviewFormData{
				PageData:    pageData(r, "Edit review"),
				Editing:     true,
				ReviewID:    string(id),
				MovieTitle:  input.MovieTitle,
				Content:     input.Content,
				Rating:      raw.rating,
				FieldErrors: fieldErrorMessages(verr),
			}
			h.view.Render(w, http.StatusOK, view.PageReviewForm, data)
			return
		}
		h.redirectServiceError(w, r, err)
		return
	}

	middleware.SetFlash(w, "success", "Review updated")
	http.Redirect(w, r, "/reviews/"+string(updated.ID), http.StatusSeeOther)
}

// DeletePage renders the delete confirmation page
func (h *ReviewHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	rev, ok := h.getReview(w, r)
	if !ok {
		return
	}
	current := middleware.GetAccount(r.Context())
	if current == nil || current.ID != rev.AuthorID {
		middleware.SetFlash(w, "error", "You can only delete your own reviews")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	items := reviewItems(r.Context(), h.accountService, current, []*model.Review{rev})
	data := view.ReviewDeleteData{
		PageData: pageData(r, "Delete review"),
		Review:   items[0],
	}
	h.view.Render(w, http.StatusOK, view.PageReviewDelete, data)
}

// Delete handles the delete confirmation submission
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.ReviewID(mux.Vars(r)["id"])
	current := middleware.GetAccount(r.Context())

	if err := h.reviewService.Delete(r.Context(), current, id); err != nil {
		h.redirectServiceError(w, r, err)
		return
	}

	middleware.SetFlash(w, "success", "Review deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// rawForm keeps the submitted text of fields that parse into other
// types, so a rejected form can be re-rendered as typed
type rawForm struct {
	rating string
}

func (h *ReviewHandler) parseForm(w http.ResponseWriter, r *http.Request) (review.Input, rawForm, bool) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return review.Input{}, rawForm{}, false
	}

	raw := rawForm{rating: r.FormValue("rating")}
	// A non-numeric rating falls through as zero and fails validation
	rating, _ := strconv.Atoi(raw.rating)

	input := review.Input{
		MovieTitle: strings.TrimSpace(r.FormValue("movie_title")),
		Content:    strings.TrimSpace(r.FormValue("content")),
		Rating:     rating,
	}
	return input, raw, true
}

func (h *ReviewHandler) getReview(w http.ResponseWriter, r *http.Request) (*model.Review, bool) {
	id := model.ReviewID(mux.Vars(r)["id"])
	rev, err := h.reviewService.Get(r.Context(), id)
	if err != nil {
		h.redirectServiceError(w, r, err)
		return nil, false
	}
	return rev, true
}

func (h *ReviewHandler) redirectServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrReviewNotFound):
		middleware.SetFlash(w, "error", "Review not found")
	case errors.Is(err, model.ErrPermissionDenied):
		middleware.SetFlash(w, "error", "You can only change your own reviews")
	case errors.Is(err, model.ErrUnauthenticated):
		http.Redirect(w, r, "/login?next="+r.URL.Path, http.StatusSeeOther)
		return
	default:
		middleware.SetFlash(w, "error", "Something went wrong, please try again")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
