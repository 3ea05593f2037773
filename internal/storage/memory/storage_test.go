package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cinelog/cinelog/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Account tests

func (s *StorageSuite) TestSaveAndGetAccount() {
	account := &model.Account{
		ID:           "acct-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccount(s.ctx, "acct-1")
	s.Require().NoError(err)
	s.Equal(account.Username, retrieved.Username)
	s.Equal(account.PasswordHash, retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestGetAccountByUsername() {
	account := &model.Account{ID: "acct-1", Username: "alice"}
	_ = s.storage.SaveAccount(s.ctx, account)

	retrieved, err := s.storage.GetAccountByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("acct-1", string(retrieved.ID))
}

func (s *StorageSuite) TestGetAccountByUsernameNotFound() {
	_, err := s.storage.GetAccountByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestRenameMovesUsernameIndex() {
	account := &model.Account{ID: "acct-1", Username: "alice"}
	_ = s.storage.SaveAccount(s.ctx, account)

	account.Username = "alicia"
	_ = s.storage.SaveAccount(s.ctx, account)

	_, err := s.storage.GetAccountByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrAccountNotFound)

	retrieved, err := s.storage.GetAccountByUsername(s.ctx, "alicia")
	s.Require().NoError(err)
	s.Equal("acct-1", string(retrieved.ID))
}

func (s *StorageSuite) TestListAccounts() {
	_ = s.storage.SaveAccount(s.ctx, &model.Account{ID: "acct-1", Username: "alice"})
	_ = s.storage.SaveAccount(s.ctx, &model.Account{ID: "acct-2", Username: "bob"})

	accounts, err := s.storage.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(accounts, 2)
}

func (s *StorageSuite) TestDeleteAccount() {
	_ = s.storage.SaveAccount(s.ctx, &model.Account{ID: "acct-1", Username: "alice"})

	err := s.storage.DeleteAccount(s.ctx, "acct-1")
	s.Require().NoError(err)

	_, err = s.storage.GetAccount(s.ctx, "acct-1")
	s.ErrorIs(err, model.ErrAccountNotFound)

	_, err = s.storage.GetAccountByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestDeleteAccountNotFound() {
	err := s.storage.DeleteAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestDeleteAccountRemovesItsReviews() {
	_ = s.storage.SaveAccount(s.ctx, &model.Account{ID: "acct-1", Username: "alice"})
	_ = s.storage.SaveAccount(s.ctx, &model.Account{ID: "acct-2", Username: "bob"})
	_ = s.storage.SaveReview(s.ctx, &model.Review{ID: "rev-1", MovieTitle: "Alien", Rating: 5, AuthorID: "acct-1"})
	_ = s.storage.SaveReview(s.ctx, &model.Review{ID: "rev-2", MovieTitle: "Heat", Rating: 4, AuthorID: "acct-2"})

	err := s.storage.DeleteAccount(s.ctx, "acct-1")
	s.Require().NoError(err)

	_, err = s.storage.GetReview(s.ctx, "rev-1")
	s.ErrorIs(err, model.ErrReviewNotFound)

	_, err = s.storage.GetReview(s.ctx, "rev-2")
	s.NoError(err)
}

func (s *StorageSuite) TestSavedAccountIsCopied() {
	account := &model.Account{ID: "acct-1", Username: "alice"}
	_ = s.storage.SaveAccount(s.ctx, account)

	account.Username = "mutated"

	retrieved, err := s.storage.GetAccount(s.ctx, "acct-1")
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
}

// Review tests

func (s *StorageSuite) TestSaveAndGetReview() {
	review := &model.Review{
		ID:         "rev-1",
		MovieTitle: "Alien",
		Content:    "Still terrifying.",
		Rating:     5,
		AuthorID:   "acct-1",
		CreatedAt:  time.Now(),
	}

	err := s.storage.SaveReview(s.ctx, review)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetReview(s.ctx, "rev-1")
	s.Require().NoError(err)
	s.Equal(review.MovieTitle, retrieved.MovieTitle)
	s.Equal(review.Rating, retrieved.Rating)
}

func (s *StorageSuite) TestGetReviewNotFound() {
	_, err := s.storage.GetReview(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrReviewNotFound)
}

func (s *StorageSuite) TestDeleteReview() {
	_ = s.storage.SaveReview(s.ctx, &model.Review{ID: "rev-1", MovieTitle: "Alien"})

	err := s.storage.DeleteReview(s.ctx, "rev-1")
	s.Require().NoError(err)

	_, err = s.storage.GetReview(s.ctx, "rev-1")
	s.ErrorIs(err, model.ErrReviewNotFound)
}

func (s *StorageSuite) TestDeleteReviewNotFound() {
	err := s.storage.DeleteReview(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrReviewNotFound)
}

// ListReviews filter tests

func (s *StorageSuite) seedReviews() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	reviews := []*model.Review{
		{ID: "rev-1", MovieTitle: "Alien", Content: "Still terrifying.", Rating: 5, AuthorID: "acct-1", CreatedAt: base},
		{ID: "rev-2", MovieTitle: "Heat", Content: "The diner scene alone.", Rating: 4, AuthorID: "acct-2", CreatedAt: base.Add(time.Hour)},
		{ID: "rev-3", MovieTitle: "Alien", Content: "Overrated in my view.", Rating: 2, AuthorID: "acct-2", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range reviews {
		_ = s.storage.SaveReview(s.ctx, r)
	}
}

func (s *StorageSuite) TestListReviewsAll() {
	s.seedReviews()

	reviews, err := s.storage.ListReviews(s.ctx, model.ReviewFilter{})
	s.Require().NoError(err)
	s.Len(reviews, 3)
}

func (s *StorageSuite) TestListReviewsByMovieTitle() {
	s.seedReviews()
	title := "Alien"

	reviews, err := s.storage.ListReviews(s.ctx, model.ReviewFilter{MovieTitle: &title})
	s.Require().NoError(err)
	s.Len(reviews, 2)
	for _, r := range reviews {
		s.Equal("Alien", r.MovieTitle)
	}
}

func (s *StorageSuite) TestListReviewsByRating() {
	s.seedReviews()
	rating := 4

	reviews, err := s.storage.ListReviews(s.ctx, model.ReviewFilter{Rating: &rating})
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)
	s.Equal("Heat", reviews[0].MovieTitle)
}

func (s *StorageSuite) TestListReviewsSearchMatchesContent() {
	s.seedReviews()

	reviews, err := s.storage.ListReviews(s.ctx, model.ReviewFilter{Search: "diner"})
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)
	s.Equal("rev-2", string(reviews[0].ID))
}

func (s *StorageSuite) TestListReviewsSearchIsCaseInsensitive() {
	s.seedReviews()

	reviews, err := s.storage.ListReviews(s.ctx, model.ReviewFilter{Search: "ALIEN"})
	s.Require().NoError(err)
	s.Len(reviews, 2)
}

func (s *StorageSuite) TestListReviewsSearchTreatsWildcardsLiterally() {
	s.seedReviews()
	scored := &model.Review{
		ID: "rev-4", MovieTitle: "Oldboy", Content: "100% earned its reputation.",
		Rating: 5, AuthorID: "acct-1", CreatedAt: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.SaveReview(s.ctx, scored))

	reviews, err := s.storage.ListReviews(s.ctx, model.ReviewFilter{Search: "%"})
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)
	s.Equal("rev-4", string(reviews[0].ID))

	reviews, err = s.storage.ListReviews(s.ctx, model.ReviewFilter{Search: "_"})
	s.Require().NoError(err)
	s.Empty(reviews)
}

func (s *StorageSuite) TestListReviewsOrderByRatingDescending() {
	s.seedReviews()

	reviews, err := s.storage.ListReviews(s.ctx, model.ReviewFilter{OrderBy: model.OrderByRating, Descending: true})
	s.Require().NoError(err)
	s.Require().Len(reviews, 3)
	s.Equal(5, reviews[0].Rating)
	s.Equal(4, reviews[1].Rating)
	s.Equal(2, reviews[2].Rating)
}

func (s *StorageSuite) TestListReviewsOrderByCreatedDescending() {
	s.seedReviews()

	reviews, err := s.storage.ListReviews(s.ctx, model.ReviewFilter{OrderBy: model.OrderByCreated, Descending: true})
	s.Require().NoError(err)
	s.Require().Len(reviews, 3)
	s.Equal("rev-3", string(reviews[0].ID))
	s.Equal("rev-1", string(reviews[2].ID))
}
