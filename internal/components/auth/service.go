package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/pantryapp/pantry/internal/components/session"
)

var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrPasswordMismatch   = errors.New("password and confirm password must match")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("username and password are required")
)

type (
	Servicer interface {
		Register(ctx context.Context, in RegisterIn) (*User, error)
		Authenticate(ctx context.Context, username, password string) (*session.Identity, error)
	}

	service struct {
		repo repoer
	}
)

func NewService(repo repoer) Servicer {
	return &service{repo: repo}
}

// Register creates a new user with a bcrypt-hashed password and an empty
// pantry. It does not start a session.
func (s *service) Register(ctx context.Context, in RegisterIn) (*User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, ErrValidation
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	// Pre-check for a friendlier failure; the unique constraint still backs
	// this up under concurrent registration.
	_, err := s.repo.GetByUsername(ctx, in.Username)
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, in.Username, string(hash))
}

// Authenticate verifies credentials and returns the identity summary suitable
// for session storage. Unknown username and wrong password are deliberately
// indistinguishable.
func (s *service) Authenticate(ctx context.Context, username, password string) (*session.Identity, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &session.Identity{
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}
