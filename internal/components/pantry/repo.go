package pantry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolationCode = "23503"

type (
	repoer interface {
		UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
		List(ctx context.Context, userID uuid.UUID) ([]FoodItem, error)
		GetByID(ctx context.Context, userID, itemID uuid.UUID) (*FoodItem, error)
		Insert(ctx context.Context, userID uuid.UUID, name string) (*FoodItem, error)
		Update(ctx context.Context, userID, itemID uuid.UUID, in UpdateItemIn) (*FoodItem, error)
		Delete(ctx context.Context, userID, itemID uuid.UUID) error
	}

	repo struct {
		pool *pgxpool.Pool
	}
)

func NewRepo(pool *pgxpool.Pool) repoer {
	return &repo{pool: pool}
}

func (r *repo) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List returns the user's pantry in insertion order.
func (r *repo) List(ctx context.Context, userID uuid.UUID) ([]FoodItem, error) {
	stmt := `
	SELECT id, name, created_at
	FROM pantry_items
	WHERE user_id = $1
	ORDER BY position`

	rows, err := r.pool.Query(ctx, stmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []FoodItem
	for rows.Next() {
		var item FoodItem
		if err := rows.Scan(&item.ID, &item.Name, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repo) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*FoodItem, error) {
	stmt := `
	SELECT id, name, created_at
	FROM pantry_items
	WHERE id = $1 AND user_id = $2`

	item := new(FoodItem)
	err := r.pool.QueryRow(ctx, stmt, itemID, userID).Scan(&item.ID, &item.Name, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// Insert appends an item to the end of the user's pantry. The bigserial
// position column keeps insertion order; item ids are fresh uuids and are
// never reused after removal.
func (r *repo) Insert(ctx context.Context, userID uuid.UUID, name string) (*FoodItem, error) {
	stmt := `
	INSERT INTO pantry_items (id, user_id, name)
	VALUES ($1, $2, $3)
	RETURNING id, name, created_at`

	item := new(FoodItem)
	err := r.pool.QueryRow(ctx, stmt, uuid.New(), userID, name).Scan(&item.ID, &item.Name, &item.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return item, nil
}

// Update performs a partial update by building SET clauses only for the
// fields present in the update struct. With no fields set it returns the
// current item unchanged.
func (r *repo) Update(ctx context.Context, userID, itemID uuid.UUID, in UpdateItemIn) (*FoodItem, error) {
	setParts := []string{}
	args := []interface{}{itemID, userID}
	argIndex := 3

	if in.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *in.Name)
		argIndex++
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, userID, itemID)
	}

	stmt := fmt.Sprintf(`
	UPDATE pantry_items
	SET %s
	WHERE id = $1 AND user_id = $2
	RETURNING id, name, created_at`,
		strings.Join(setParts, ", "))

	item := new(FoodItem)
	err := r.pool.QueryRow(ctx, stmt, args...).Scan(&item.ID, &item.Name, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// Delete removes the item if present. Deleting an absent item is not an
// error; the original behavior does not distinguish "removed" from "was
// never there".
func (r *repo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM pantry_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	return err
}
