package factory

import (
	"context"
	"time"

	"github.com/cinelog/cinelog/internal/dependencies/mocks"
	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/account"
	"github.com/cinelog/cinelog/internal/services/auth"
	"github.com/cinelog/cinelog/internal/services/review"
	"github.com/cinelog/cinelog/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mock for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a mocked clock
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, auth.DefaultConfig())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}

// CreateTestAccount registers an account and returns it
func (t *TestApp) CreateTestAccount(ctx context.Context, username string) (*model.Account, error) {
	return t.AccountService.Register(ctx, account.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
}

// CreateTestAdmin creates an administrator account directly in storage
func (t *TestApp) CreateTestAdmin(ctx context.Context, username string) (*model.Account, error) {
	acct, err := t.CreateTestAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	acct.IsAdmin = true
	if err := t.Storage.SaveAccount(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// CreateTestReview creates a review authored by the given account
func (t *TestApp) CreateTestReview(ctx context.Context, author *model.Account, title string, rating int) (*model.Review, error) {
	return t.ReviewService.Create(ctx, author, review.Input{
		MovieTitle: title,
		Content:    "A review of " + title,
		Rating:     rating,
	})
}
