package user

import (
	"context"

	"github.com/google/uuid"
)

type (
	// Servicer exposes the public community views of registered users.
	Servicer interface {
		List(ctx context.Context) ([]Summary, error)
		Get(ctx context.Context, id uuid.UUID) (*Summary, error)
	}

	service struct {
		repo repoer
	}
)

func NewService(repo repoer) Servicer {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Summary, error) {
	return s.repo.GetByID(ctx, id)
}
