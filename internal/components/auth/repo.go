package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

const uniqueViolationCode = "23505"

type (
	repoer interface {
		Create(ctx context.Context, username, passwordHash string) (*User, error)
		GetByUsername(ctx context.Context, username string) (*User, error)
	}

	repo struct {
		pool *pgxpool.Pool
	}
)

func NewRepo(pool *pgxpool.Pool) repoer {
	return &repo{pool: pool}
}

// Create inserts a new user with an empty pantry. A unique violation on the
// username column surfaces as ErrDuplicateUsername so callers that raced past
// the pre-check still get the domain error.
func (r *repo) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	stmt := `
	INSERT INTO users (id, username, password_hash)
	VALUES ($1, $2, $3)
	RETURNING id, username, password_hash, created_at`

	user := new(User)
	err := r.pool.QueryRow(ctx, stmt, uuid.New(), username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

// GetByUsername looks up a user by exact, case-sensitive username match.
func (r *repo) GetByUsername(ctx context.Context, username string) (*User, error) {
	stmt := `
	SELECT id, username, password_hash, created_at
	FROM users
	WHERE username = $1`

	user := new(User)
	err := r.pool.QueryRow(ctx, stmt, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
