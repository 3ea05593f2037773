package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/storage"
)

//go:embed schema.sql
var schema string

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path and
// applies the schema. Use ":memory:" for an ephemeral database.
func New(path string) (*Storage, error) {
	dsn := path + "?_foreign_keys=on"
	if strings.Contains(path, "?") {
		dsn = path + "&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// An in-memory database exists per connection, so the pool must
	// not grow beyond one
	if strings.Contains(path, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, username, email, password_hash, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			email = excluded.email,
			password_hash = excluded.password_hash,
			is_admin = excluded.is_admin,
			updated_at = excluded.updated_at`,
		string(account.ID), account.Username, account.Email, account.PasswordHash,
		account.IsAdmin, account.CreatedAt.UTC(), account.UpdatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return model.ErrUsernameExists
	}
	return err
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, is_admin, created_at, updated_at
		FROM accounts WHERE id = ?`, string(id))
	return scanAccount(row)
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, is_admin, created_at, updated_at
		FROM accounts WHERE username = ?`, username)
	return scanAccount(row)
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, email, password_hash, is_admin, created_at, updated_at
		FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var accounts []*model.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.AccountID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

// Review operations

func (s *Storage) SaveReview(ctx context.Context, review *model.Review) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, movie_title, content, rating, author_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			movie_title = excluded.movie_title,
			content = excluded.content,
			rating = excluded.rating`,
		string(review.ID), review.MovieTitle, review.Content, review.Rating,
		string(review.AuthorID), review.CreatedAt.UTC(),
	)
	return err
}

func (s *Storage) GetReview(ctx context.Context, id model.ReviewID) (*model.Review, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, movie_title, content, rating, author_id, created_at
		FROM reviews WHERE id = ?`, string(id))
	return scanReview(row)
}

func (s *Storage) ListReviews(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, movie_title, content, rating, author_id, created_at
		FROM reviews`)

	var conds []string
	var args []any
	if filter.MovieTitle != nil {
		conds = append(conds, "movie_title = ?")
		args = append(args, *filter.MovieTitle)
	}
	if filter.Rating != nil {
		conds = append(conds, "rating = ?")
		args = append(args, *filter.Rating)
	}
	if filter.Search != "" {
		conds = append(conds, `(LOWER(movie_title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		args = append(args, pattern, pattern)
	}
	if len(conds) > 0 {
		query.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	dir := "ASC"
	if filter.Descending {
		dir = "DESC"
	}
	switch filter.OrderBy {
	case model.OrderByRating:
		query.WriteString(fmt.Sprintf(" ORDER BY rating %s, created_at %s", dir, dir))
	default:
		query.WriteString(" ORDER BY created_at " + dir)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var reviews []*model.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// likeEscaper neutralizes LIKE wildcards so a search term matches
// literally, the same as the in-memory substring filter.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (s *Storage) DeleteReview(ctx context.Context, id model.ReviewID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

// scanner abstracts over *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*model.Account, error) {
	var account model.Account
	var id string
	var createdAt, updatedAt time.Time
	err := row.Scan(&id, &account.Username, &account.Email, &account.PasswordHash,
		&account.IsAdmin, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	account.ID = model.AccountID(id)
	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt
	return &account, nil
}

func scanReview(row scanner) (*model.Review, error) {
	var review model.Review
	var id, authorID string
	var createdAt time.Time
	err := row.Scan(&id, &review.MovieTitle, &review.Content, &review.Rating,
		&authorID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	review.ID = model.ReviewID(id)
	review.AuthorID = model.AccountID(authorID)
	review.CreatedAt = createdAt
	return &review, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
