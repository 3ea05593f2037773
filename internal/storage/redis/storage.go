package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	// Drop the stale username index entry on rename
	var staleUsername string
	if existing, err := s.GetAccount(ctx, account.ID); err == nil && existing.Username != account.Username {
		staleUsername = existing.Username
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.accountKey(account.ID), data, 0)
	pipe.Set(ctx, s.usernameIndexKey(account.Username), string(account.ID), 0)
	pipe.SAdd(ctx, s.accountSetKey(), string(account.ID))
	if staleUsername != "" {
		pipe.Del(ctx, s.usernameIndexKey(staleUsername))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	data, err := s.client.Get(ctx, s.accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	id, err := s.client.Get(ctx, s.usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.AccountID(id))
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	ids, err := s.client.SMembers(ctx, s.accountSetKey()).Result()
	if err != nil {
		return nil, err
	}

	accounts := make([]*model.Account, 0, len(ids))
	for _, id := range ids {
		account, err := s.GetAccount(ctx, model.AccountID(id))
		if err != nil {
			if errors.Is(err, model.ErrAccountNotFound) {
				continue
			}
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.AccountID) error {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return err
	}

	// Deleting an account removes its reviews as well
	reviews, err := s.ListReviews(ctx, model.ReviewFilter{})
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.accountKey(id))
	pipe.Del(ctx, s.usernameIndexKey(account.Username))
	pipe.SRem(ctx, s.accountSetKey(), string(id))
	for _, review := range reviews {
		if review.AuthorID == id {
			pipe.Del(ctx, s.reviewKey(review.ID))
			pipe.SRem(ctx, s.reviewSetKey(), string(review.ID))
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Review operations

func (s *Storage) SaveReview(ctx context.Context, review *model.Review) error {
	data, err := json.Marshal(review)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.reviewKey(review.ID), data, 0)
	pipe.SAdd(ctx, s.reviewSetKey(), string(review.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetReview(ctx context.Context, id model.ReviewID) (*model.Review, error) {
	data, err := s.client.Get(ctx, s.reviewKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrReviewNotFound
		}
		return nil, err
	}

	var review model.Review
	if err := json.Unmarshal(data, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Storage) ListReviews(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	ids, err := s.client.SMembers(ctx, s.reviewSetKey()).Result()
	if err != nil {
		return nil, err
	}

	var reviews []*model.Review
	for _, id := range ids {
		review, err := s.GetReview(ctx, model.ReviewID(id))
		if err != nil {
			if errors.Is(err, model.ErrReviewNotFound) {
				continue
			}
			return nil, err
		}
		if storage.MatchesFilter(review, filter) {
			reviews = append(reviews, review)
		}
	}
	storage.SortReviews(reviews, filter)
	return reviews, nil
}

func (s *Storage) DeleteReview(ctx context.Context, id model.ReviewID) error {
	exists, err := s.client.Exists(ctx, s.reviewKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrReviewNotFound
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.reviewKey(id))
	pipe.SRem(ctx, s.reviewSetKey(), string(id))
	_, err = pipe.Exec(ctx)
	return err
}
