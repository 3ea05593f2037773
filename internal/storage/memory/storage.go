package memory

import (
	"context"
	"sync"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts      map[model.AccountID]*model.Account
	usernameIndex map[string]model.AccountID
	reviews       map[model.ReviewID]*model.Review
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:      make(map[model.AccountID]*model.Account),
		usernameIndex: make(map[string]model.AccountID),
		reviews:       make(map[model.ReviewID]*model.Review),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Drop the stale username index entry on rename
	if existing, ok := s.accounts[account.ID]; ok && existing.Username != account.Username {
		delete(s.usernameIndex, existing.Username)
	}

	saved := *account
	s.accounts[account.ID] = &saved
	s.usernameIndex[account.Username] = account.ID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	result := *account
	return &result, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	result := *account
	return &result, nil
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]*model.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		result := *account
		accounts = append(accounts, &result)
	}
	return accounts, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	delete(s.usernameIndex, account.Username)
	delete(s.accounts, id)
	// Deleting an account removes its reviews as well
	for reviewID, review := range s.reviews {
		if review.AuthorID == id {
			delete(s.reviews, reviewID)
		}
	}
	return nil
}

// Review operations

func (s *Storage) SaveReview(ctx context.Context, review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *review
	s.reviews[review.ID] = &saved
	return nil
}

func (s *Storage) GetReview(ctx context.Context, id model.ReviewID) (*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	review, ok := s.reviews[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	result := *review
	return &result, nil
}

func (s *Storage) ListReviews(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reviews []*model.Review
	for _, review := range s.reviews {
		if storage.MatchesFilter(review, filter) {
			result := *review
			reviews = append(reviews, &result)
		}
	}
	storage.SortReviews(reviews, filter)
	return reviews, nil
}

func (s *Storage) DeleteReview(ctx context.Context, id model.ReviewID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return model.ErrReviewNotFound
	}
	delete(s.reviews, id)
	return nil
}
