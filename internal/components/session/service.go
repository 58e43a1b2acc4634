package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pantryapp/pantry/internal/shared/config"
)

type (
	// Servicer issues, resolves and ends server-side sessions. A request with
	// no resolvable session is anonymous, which is a valid state, not an error.
	Servicer interface {
		Start(ctx context.Context, identity Identity) (uuid.UUID, error)
		Resolve(ctx context.Context, token uuid.UUID) (*Identity, error)
		End(ctx context.Context, token uuid.UUID) error
	}

	service struct {
		repo   repoer
		ttl    time.Duration
		logger zerolog.Logger
	}
)

func NewService(repo repoer, cfg *config.Config, logger zerolog.Logger) Servicer {
	return &service{
		repo:   repo,
		ttl:    cfg.SessionTTL,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Start issues a fresh opaque token for the identity. Existing sessions for
// the same user stay valid; every device gets its own token.
func (s *service) Start(ctx context.Context, identity Identity) (uuid.UUID, error) {
	// Opportunistic cleanup; failure here must not block the login.
	if purged, err := s.repo.PurgeExpired(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to purge expired sessions")
	} else if purged > 0 {
		s.logger.Debug().Int64("purged", purged).Msg("Purged expired sessions")
	}

	token := uuid.New()
	if err := s.repo.Insert(ctx, token, identity, time.Now().Add(s.ttl)); err != nil {
		return uuid.Nil, err
	}
	return token, nil
}

// Resolve maps a token to its identity. Unknown and expired tokens resolve to
// (nil, nil): anonymous.
func (s *service) Resolve(ctx context.Context, token uuid.UUID) (*Identity, error) {
	identity, err := s.repo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return identity, nil
}

// End invalidates the session immediately. Ending an unknown or already-ended
// session is not an error.
func (s *service) End(ctx context.Context, token uuid.UUID) error {
	return s.repo.Delete(ctx, token)
}
