package storage

import (
	"context"

	"github.com/cinelog/cinelog/internal/model"
)

// Storage defines the interface for data persistence.
// Not-found lookups return model.ErrAccountNotFound or
// model.ErrReviewNotFound; any other failure is backend-specific and
// wrapped by the service layer.
type Storage interface {
	// Account operations. DeleteAccount also removes every review
	// authored by the account.
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]*model.Account, error)
	DeleteAccount(ctx context.Context, id model.AccountID) error

	// Review operations
	SaveReview(ctx context.Context, review *model.Review) error
	GetReview(ctx context.Context, id model.ReviewID) (*model.Review, error)
	ListReviews(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error)
	DeleteReview(ctx context.Context, id model.ReviewID) error
}
