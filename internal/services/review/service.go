package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/cinelog/cinelog/internal/dependencies/clock"
	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/storage"
)

// Service provides review CRUD composing authorization, validation and
// storage. Reviews may be read by anyone; they are created by an
// authenticated caller and mutated or deleted only by their author.
// Administrator role grants nothing here: ownership is the sole
// mutation predicate for reviews.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new review Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// Input carries the caller-settable fields of a review. Author and
// creation time are assigned by the service and cannot be supplied.
type Input struct {
	MovieTitle string
	Content    string
	Rating     int
}

// UpdateInput carries updatable review fields. Nil pointers leave the
// field unchanged.
type UpdateInput struct {
	MovieTitle *string
	Content    *string
	Rating     *int
}

// List returns reviews matching the filter. Open to anonymous callers.
func (s *Service) List(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	reviews, err := s.storage.ListReviews(ctx, filter)
	if err != nil {
		return nil, storage.WrapError(err)
	}
	return reviews, nil
}

// Get returns one review by ID. Open to anonymous callers.
func (s *Service) Get(ctx context.Context, id model.ReviewID) (*model.Review, error) {
	review, err := s.storage.GetReview(ctx, id)
	if err != nil {
		return nil, storage.WrapError(err)
	}
	return review, nil
}

// Create stores a new review owned by the caller. The author is always
// the caller, regardless of anything the adapter received as input.
func (s *Service) Create(ctx context.Context, caller *model.Account, input Input) (*model.Review, error) {
	if caller == nil {
		return nil, model.ErrUnauthenticated
	}

	if verr := Validate(input); verr.HasErrors() {
		return nil, verr
	}

	review := &model.Review{
		ID:         model.ReviewID(uuid.NewString()),
		MovieTitle: input.MovieTitle,
		Content:    input.Content,
		Rating:     input.Rating,
		AuthorID:   caller.ID,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.storage.SaveReview(ctx, review); err != nil {
		return nil, storage.WrapError(err)
	}
	return review, nil
}

// Update mutates the caller-settable fields of a review; omitted
// fields keep their stored values. Only the author may update;
// administrators are rejected like anyone else. Author and creation
// time are preserved.
func (s *Service) Update(ctx context.Context, caller *model.Account, id model.ReviewID, input UpdateInput) (*model.Review, error) {
	if caller == nil {
		return nil, model.ErrUnauthenticated
	}

	review, err := s.storage.GetReview(ctx, id)
	if err != nil {
		return nil, storage.WrapError(err)
	}

	if review.AuthorID != caller.ID {
		return nil, model.ErrPermissionDenied
	}

	if input.MovieTitle != nil {
		review.MovieTitle = *input.MovieTitle
	}
	if input.Content != nil {
		review.Content = *input.Content
	}
	if input.Rating != nil {
		review.Rating = *input.Rating
	}

	// Validate the merged result so a partial payload cannot leave
	// the review in an invalid state
	merged := Input{MovieTitle: review.MovieTitle, Content: review.Content, Rating: review.Rating}
	if verr := Validate(merged); verr.HasErrors() {
		return nil, verr
	}

	if err := s.storage.SaveReview(ctx, review); err != nil {
		return nil, storage.WrapError(err)
	}
	return review, nil
}

// Delete removes a review permanently. Only the author may delete.
// Deleting an already-deleted review reports not-found.
func (s *Service) Delete(ctx context.Context, caller *model.Account, id model.ReviewID) error {
	if caller == nil {
		return model.ErrUnauthenticated
	}

	review, err := s.storage.GetReview(ctx, id)
	if err != nil {
		return storage.WrapError(err)
	}

	if review.AuthorID != caller.ID {
		return model.ErrPermissionDenied
	}

	return storage.WrapError(s.storage.DeleteReview(ctx, id))
}
