package review

import (
	"fmt"
	"strings"

	"github.com/cinelog/cinelog/internal/model"
)

// Validate checks the caller-supplied fields of a review. It is applied
// on both create and update; author and creation time are never
// caller-settable and so are not validated here.
func Validate(input Input) *model.ValidationError {
	verr := &model.ValidationError{}
	if strings.TrimSpace(input.MovieTitle) == "" {
		verr.Add("movie_title", "is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		verr.Add("content", "is required")
	}
	if input.Rating < model.MinRating || input.Rating > model.MaxRating {
		verr.Add("rating", fmt.Sprintf("must be between %d and %d", model.MinRating, model.MaxRating))
	}
	return verr
}
