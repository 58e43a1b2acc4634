package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryapp/pantry/internal/shared/config"
)

type storedSession struct {
	identity  Identity
	expiresAt time.Time
}

// fakeRepo holds sessions in memory with real expiry checks.
type fakeRepo struct {
	sessions map[uuid.UUID]storedSession
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[uuid.UUID]storedSession)}
}

func (f *fakeRepo) Insert(_ context.Context, token uuid.UUID, identity Identity, expiresAt time.Time) error {
	f.sessions[token] = storedSession{identity: identity, expiresAt: expiresAt}
	return nil
}

func (f *fakeRepo) Find(_ context.Context, token uuid.UUID) (*Identity, error) {
	stored, ok := f.sessions[token]
	if !ok || !stored.expiresAt.After(time.Now()) {
		return nil, ErrSessionNotFound
	}
	identity := stored.identity
	return &identity, nil
}

func (f *fakeRepo) Delete(_ context.Context, token uuid.UUID) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeRepo) PurgeExpired(_ context.Context) (int64, error) {
	var purged int64
	for token, stored := range f.sessions {
		if !stored.expiresAt.After(time.Now()) {
			delete(f.sessions, token)
			purged++
		}
	}
	return purged, nil
}

func newTestService(repo repoer, ttl time.Duration) Servicer {
	return NewService(repo, &config.Config{SessionTTL: ttl}, zerolog.Nop())
}

func TestStartAndResolve(t *testing.T) {
	service := newTestService(newFakeRepo(), time.Hour)
	identity := Identity{UserID: uuid.New(), Username: "alice"}

	token, err := service.Start(context.Background(), identity)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, token)

	resolved, err := service.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, identity, *resolved)
}

func TestResolve_UnknownTokenIsAnonymous(t *testing.T) {
	service := newTestService(newFakeRepo(), time.Hour)

	resolved, err := service.Resolve(context.Background(), uuid.New())
	require.NoError(t, err, "anonymous must not fail the request")
	assert.Nil(t, resolved)
}

func TestResolve_ExpiredTokenIsAnonymous(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo, -time.Minute)

	token, err := service.Start(context.Background(), Identity{UserID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	resolved, err := service.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestEnd_IsIdempotent(t *testing.T) {
	service := newTestService(newFakeRepo(), time.Hour)

	token, err := service.Start(context.Background(), Identity{UserID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	require.NoError(t, service.End(context.Background(), token))
	require.NoError(t, service.End(context.Background(), token), "ending an already-ended session is not an error")

	resolved, err := service.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestStart_IndependentSessionsPerDevice(t *testing.T) {
	service := newTestService(newFakeRepo(), time.Hour)
	identity := Identity{UserID: uuid.New(), Username: "alice"}

	first, err := service.Start(context.Background(), identity)
	require.NoError(t, err)
	second, err := service.Start(context.Background(), identity)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// Ending one device's session leaves the other intact.
	require.NoError(t, service.End(context.Background(), first))

	resolved, err := service.Resolve(context.Background(), second)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, identity, *resolved)
}
