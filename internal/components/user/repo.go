package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type (
	repoer interface {
		List(ctx context.Context) ([]Summary, error)
		GetByID(ctx context.Context, id uuid.UUID) (*Summary, error)
	}

	repo struct {
		pool *pgxpool.Pool
	}
)

func NewRepo(pool *pgxpool.Pool) repoer {
	return &repo{pool: pool}
}

func (r *repo) List(ctx context.Context) ([]Summary, error) {
	stmt := `
	SELECT id, username, created_at
	FROM users
	ORDER BY username`

	rows, err := r.pool.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []Summary
	for rows.Next() {
		var u Summary
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *repo) GetByID(ctx context.Context, id uuid.UUID) (*Summary, error) {
	stmt := `
	SELECT id, username, created_at
	FROM users
	WHERE id = $1`

	u := new(Summary)
	err := r.pool.QueryRow(ctx, stmt, id).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return u, nil
}
