package pantry

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrItemNotFound = errors.New("item not found")
	ErrValidation   = errors.New("item name is required")
)

type (
	// Servicer manages the food items embedded in a user's pantry. Every
	// operation is scoped by the owning user id; authorization against the
	// current session identity is layered by the caller, not here.
	Servicer interface {
		ListItems(ctx context.Context, userID uuid.UUID) ([]FoodItem, error)
		GetItem(ctx context.Context, userID, itemID uuid.UUID) (*FoodItem, error)
		AddItem(ctx context.Context, userID uuid.UUID, in AddItemIn) (*FoodItem, error)
		UpdateItem(ctx context.Context, userID, itemID uuid.UUID, in UpdateItemIn) (*FoodItem, error)
		RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	}

	service struct {
		repo repoer
	}
)

func NewService(repo repoer) Servicer {
	return &service{repo: repo}
}

func (s *service) ListItems(ctx context.Context, userID uuid.UUID) ([]FoodItem, error) {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	return s.repo.List(ctx, userID)
}

func (s *service) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*FoodItem, error) {
	return s.repo.GetByID(ctx, userID, itemID)
}

// AddItem appends a new item to the end of the pantry. The insert is a single
// statement, so a failed validation leaves the pantry untouched.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, in AddItemIn) (*FoodItem, error) {
	if in.Name == "" {
		return nil, ErrValidation
	}

	return s.repo.Insert(ctx, userID, in.Name)
}

// UpdateItem merges the enumerated mutable fields into the matching item.
// Sibling items are untouched.
func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, in UpdateItemIn) (*FoodItem, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, ErrValidation
	}

	return s.repo.Update(ctx, userID, itemID, in)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, itemID)
}
