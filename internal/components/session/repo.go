package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSessionNotFound = errors.New("session not found")

type (
	repoer interface {
		Insert(ctx context.Context, token uuid.UUID, identity Identity, expiresAt time.Time) error
		Find(ctx context.Context, token uuid.UUID) (*Identity, error)
		Delete(ctx context.Context, token uuid.UUID) error
		PurgeExpired(ctx context.Context) (int64, error)
	}

	repo struct {
		pool *pgxpool.Pool
	}
)

func NewRepo(pool *pgxpool.Pool) repoer {
	return &repo{pool: pool}
}

func (r *repo) Insert(ctx context.Context, token uuid.UUID, identity Identity, expiresAt time.Time) error {
	stmt := `
	INSERT INTO sessions (token, user_id, username, expires_at)
	VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, stmt, token, identity.UserID, identity.Username, expiresAt)
	return err
}

// Find returns the identity bound to a live session token.
// Expired rows are treated as absent.
func (r *repo) Find(ctx context.Context, token uuid.UUID) (*Identity, error) {
	stmt := `
	SELECT user_id, username
	FROM sessions
	WHERE token = $1 AND expires_at > now()`

	var identity Identity
	err := r.pool.QueryRow(ctx, stmt, token).Scan(&identity.UserID, &identity.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &identity, nil
}

func (r *repo) Delete(ctx context.Context, token uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (r *repo) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
