package storage

import (
	"errors"

	"github.com/cinelog/cinelog/internal/model"
)

// WrapError wraps an unexpected backend failure in a
// model.StorageError. Model sentinel errors pass through untouched so
// callers can match them with errors.Is.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, model.ErrAccountNotFound),
		errors.Is(err, model.ErrReviewNotFound),
		errors.Is(err, model.ErrUsernameExists):
		return err
	}
	var se *model.StorageError
	if errors.As(err, &se) {
		return err
	}
	return &model.StorageError{Cause: err}
}
