package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cinelog/cinelog/internal/dependencies/clock"
	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/storage"
)

// Service provides account CRUD composing authorization, validation
// and storage. Mutations require the caller to be the target account
// or an administrator; reads are open to anonymous callers.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new account Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// RegisterInput carries the fields of the unauthenticated sign-up path
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// CreateInput carries the fields of an authenticated account creation.
// IsAdmin is honored only when the caller is an administrator.
type CreateInput struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// UpdateInput carries updatable account fields. Nil pointers leave the
// field unchanged; an empty Password leaves the credential unchanged.
type UpdateInput struct {
	Username *string
	Email    *string
	Password string
}

// Register creates an account through the public sign-up path.
// The caller is anonymous by definition and the account is never an
// administrator.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*model.Account, error) {
	return s.create(ctx, CreateInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
}

// Create creates an account on behalf of an authenticated caller.
// Only administrators may mint administrator accounts.
func (s *Service) Create(ctx context.Context, caller *model.Account, input CreateInput) (*model.Account, error) {
	if caller == nil {
		return nil, model.ErrUnauthenticated
	}
	if input.IsAdmin && !caller.IsAdmin {
		return nil, model.ErrPermissionDenied
	}
	return s.create(ctx, input)
}

func (s *Service) create(ctx context.Context, input CreateInput) (*model.Account, error) {
	if verr := ValidateCreate(input); verr.HasErrors() {
		return nil, verr
	}

	// Username uniqueness
	_, err := s.storage.GetAccountByUsername(ctx, input.Username)
	if err == nil {
		return nil, model.ErrUsernameExists
	}
	if !errors.Is(err, model.ErrAccountNotFound) {
		return nil, storage.WrapError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	account := &model.Account{
		ID:           model.AccountID(uuid.NewString()),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsAdmin:      input.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, storage.WrapError(err)
	}
	return account, nil
}

// List returns all accounts. Open to anonymous callers.
func (s *Service) List(ctx context.Context) ([]*model.Account, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, storage.WrapError(err)
	}
	return accounts, nil
}

// Get returns one account by ID. Open to anonymous callers.
func (s *Service) Get(ctx context.Context, id model.AccountID) (*model.Account, error) {
	account, err := s.storage.GetAccount(ctx, id)
	if err != nil {
		return nil, storage.WrapError(err)
	}
	return account, nil
}

// GetByUsername returns one account by username. Open to anonymous callers.
func (s *Service) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, storage.WrapError(err)
	}
	return account, nil
}

// Update mutates an account. Allowed for the account itself or an
// administrator. A supplied password is re-hashed; it is never stored
// or echoed in plaintext.
func (s *Service) Update(ctx context.Context, caller *model.Account, id model.AccountID, input UpdateInput) (*model.Account, error) {
	if caller == nil {
		return nil, model.ErrUnauthenticated
	}

	account, err := s.storage.GetAccount(ctx, id)
	if err != nil {
		return nil, storage.WrapError(err)
	}

	if caller.ID != account.ID && !caller.IsAdmin {
		return nil, model.ErrPermissionDenied
	}

	if verr := ValidateUpdate(input); verr.HasErrors() {
		return nil, verr
	}

	if input.Username != nil && *input.Username != account.Username {
		// Re-check uniqueness for the new name
		_, err := s.storage.GetAccountByUsername(ctx, *input.Username)
		if err == nil {
			return nil, model.ErrUsernameExists
		}
		if !errors.Is(err, model.ErrAccountNotFound) {
			return nil, storage.WrapError(err)
		}
		account.Username = *input.Username
	}
	if input.Email != nil {
		account.Email = *input.Email
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}
	account.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, storage.WrapError(err)
	}
	return account, nil
}

// Delete removes an account permanently. Allowed for the account
// itself or an administrator.
func (s *Service) Delete(ctx context.Context, caller *model.Account, id model.AccountID) error {
	if caller == nil {
		return model.ErrUnauthenticated
	}

	account, err := s.storage.GetAccount(ctx, id)
	if err != nil {
		return storage.WrapError(err)
	}

	if caller.ID != account.ID && !caller.IsAdmin {
		return model.ErrPermissionDenied
	}

	return storage.WrapError(s.storage.DeleteAccount(ctx, id))
}
