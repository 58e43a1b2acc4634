package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryapp/pantry/internal/components/session"
	"github.com/pantryapp/pantry/internal/shared/cookie"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// fakeSessions resolves a single known token to a fixed identity.
type fakeSessions struct {
	token    uuid.UUID
	identity session.Identity
}

func (f *fakeSessions) Start(context.Context, session.Identity) (uuid.UUID, error) {
	return f.token, nil
}

func (f *fakeSessions) Resolve(_ context.Context, token uuid.UUID) (*session.Identity, error) {
	if token != f.token {
		return nil, nil
	}
	identity := f.identity
	return &identity, nil
}

func (f *fakeSessions) End(context.Context, uuid.UUID) error {
	return nil
}

func sessionCookie(t *testing.T, token uuid.UUID) *http.Cookie {
	t.Helper()
	recorder := httptest.NewRecorder()
	require.NoError(t, cookie.SetCookie(recorder, token, testSecret))
	return recorder.Result().Cookies()[0]
}

func TestCurrentUser_ValidSession(t *testing.T) {
	sessions := &fakeSessions{
		token:    uuid.New(),
		identity: session.Identity{UserID: uuid.New(), Username: "alice"},
	}

	var got *session.Identity
	handler := NewCurrentUser(sessions, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, sessions.token))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, sessions.identity, *got)
}

func TestCurrentUser_NoCookieIsAnonymous(t *testing.T) {
	sessions := &fakeSessions{token: uuid.New()}

	recorder := httptest.NewRecorder()
	handler := NewCurrentUser(sessions, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, IdentityFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, recorder.Code, "anonymous requests pass through")
}

func TestCurrentUser_UnknownTokenIsAnonymous(t *testing.T) {
	sessions := &fakeSessions{token: uuid.New()}

	var sawHandler bool
	handler := NewCurrentUser(sessions, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawHandler = true
		assert.Nil(t, IdentityFromContext(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, uuid.New()))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, sawHandler)
}

func newGuardedRouter(t *testing.T, sessions session.Servicer, enforce bool) chi.Router {
	t.Helper()
	router := chi.NewRouter()
	router.Use(NewCurrentUser(sessions, testSecret))
	router.With(NewOwnershipGuard(enforce)).Post("/users/{userId}/foods", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return router
}

func TestOwnershipGuard_Disabled(t *testing.T) {
	sessions := &fakeSessions{token: uuid.New()}
	router := newGuardedRouter(t, sessions, false)

	// Anonymous mutation of someone else's pantry passes, preserving the
	// original application's behavior.
	req := httptest.NewRequest(http.MethodPost, "/users/"+uuid.NewString()+"/foods", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestOwnershipGuard_EnforcedRejectsOthers(t *testing.T) {
	sessions := &fakeSessions{
		token:    uuid.New(),
		identity: session.Identity{UserID: uuid.New(), Username: "alice"},
	}
	router := newGuardedRouter(t, sessions, true)

	req := httptest.NewRequest(http.MethodPost, "/users/"+uuid.NewString()+"/foods", nil)
	req.AddCookie(sessionCookie(t, sessions.token))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestOwnershipGuard_EnforcedAllowsOwner(t *testing.T) {
	sessions := &fakeSessions{
		token:    uuid.New(),
		identity: session.Identity{UserID: uuid.New(), Username: "alice"},
	}
	router := newGuardedRouter(t, sessions, true)

	req := httptest.NewRequest(http.MethodPost, "/users/"+sessions.identity.UserID.String()+"/foods", nil)
	req.AddCookie(sessionCookie(t, sessions.token))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestMethodOverride(t *testing.T) {
	var sawMethod string
	handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawMethod = r.Method
	}))

	form := url.Values{"_method": {"DELETE"}, "name": {"Bananas"}}
	req := httptest.NewRequest(http.MethodPost, "/users/1/foods/2", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, http.MethodDelete, sawMethod)
}

func TestMethodOverride_LeavesPlainPostAlone(t *testing.T) {
	var sawMethod string
	handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawMethod = r.Method
	}))

	form := url.Values{"name": {"Bananas"}}
	req := httptest.NewRequest(http.MethodPost, "/users/1/foods", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, http.MethodPost, sawMethod)
}
