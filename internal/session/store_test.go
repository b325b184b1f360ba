package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexportal/internal/apiclient"
)

// fakeBackend is a minimal practice-management backend: cookie-based
// sessions, a single known user.
type fakeBackend struct {
	password string
	userJSON string

	loginCalls atomic.Int64
	meCalls    atomic.Int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		password: "correcta123",
		userJSON: `{"id": "u1", "full_name": "Ana Pérez", "email": "ana@despacho.com", "role": "lawyer"}`,
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.loginCalls.Add(1)
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		decodeJSON(r, &body)

		if body.Password != f.password {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Credenciales incorrectas"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "backend_session", Value: "s1", Path: "/"})
	})

	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		f.meCalls.Add(1)
		if c, err := r.Cookie("backend_session"); err != nil || c.Value != "s1" {
			w.WriteHeader(http.StatusOK) // empty body: anonymous
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f.userJSON))
	})

	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "backend_session", Value: "", MaxAge: -1, Path: "/"})
	})

	return mux
}

func decodeJSON(r *http.Request, v interface{}) {
	dec := json.NewDecoder(r.Body)
	_ = dec.Decode(v)
}

func newTestStore(t *testing.T, handler http.Handler) (*Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := apiclient.New(server.URL, 5*time.Second, nil)
	store, err := NewStore("sess-1", api, nil)
	require.NoError(t, err)
	return store, server
}

func TestLoginUserSuccess(t *testing.T) {
	backend := newFakeBackend()
	store, _ := newTestStore(t, backend.handler())

	user, err := store.LoginUser(context.Background(), "ana@despacho.com", "correcta123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)

	state := store.State()
	assert.True(t, state.Authenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "Ana Pérez", state.User.FullName)
}

func TestLoginUserWrongPassword(t *testing.T) {
	backend := newFakeBackend()
	store, _ := newTestStore(t, backend.handler())

	user, err := store.LoginUser(context.Background(), "ana@despacho.com", "incorrecta")
	require.Error(t, err)
	assert.Nil(t, user)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Credenciales incorrectas", authErr.Error())

	// The Me follow-up is never issued after a failed login.
	assert.Equal(t, int64(0), backend.meCalls.Load())

	state := store.State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
}

func TestLoginUserFetchFailsClearsSession(t *testing.T) {
	// Login succeeds but /auth/me returns an empty body.
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {})

	store, _ := newTestStore(t, mux)

	user, err := store.LoginUser(context.Background(), "ana@despacho.com", "pw")
	require.Error(t, err)
	assert.Nil(t, user)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)

	state := store.State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
}

func TestAuthenticatedImpliesUser(t *testing.T) {
	backend := newFakeBackend()
	store, _ := newTestStore(t, backend.handler())

	check := func() {
		state := store.State()
		if state.Authenticated {
			assert.NotNil(t, state.User)
		}
	}

	check()
	store.LoginUser(context.Background(), "ana@despacho.com", "incorrecta")
	check()
	store.LoginUser(context.Background(), "ana@despacho.com", "correcta123")
	check()
	store.UserValid(context.Background())
	check()
	store.Logout(context.Background())
	check()
}

func TestUserValidRefreshesSnapshot(t *testing.T) {
	backend := newFakeBackend()
	store, _ := newTestStore(t, backend.handler())

	_, err := store.LoginUser(context.Background(), "ana@despacho.com", "correcta123")
	require.NoError(t, err)

	// Backend-side profile change shows up after re-validation.
	backend.userJSON = `{"id": "u1", "full_name": "Ana P. García", "email": "ana@despacho.com", "role": "lawyer"}`
	store.UserValid(context.Background())

	state := store.State()
	require.True(t, state.Authenticated)
	assert.Equal(t, "Ana P. García", state.User.FullName)
}

func TestUserValidClearsDeadSession(t *testing.T) {
	backend := newFakeBackend()
	store, server := newTestStore(t, backend.handler())

	_, err := store.LoginUser(context.Background(), "ana@despacho.com", "correcta123")
	require.NoError(t, err)

	// Kill the backend: re-validation must fail closed.
	server.Close()
	store.UserValid(context.Background())

	state := store.State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
}

func TestUserValidIdempotent(t *testing.T) {
	backend := newFakeBackend()
	store, _ := newTestStore(t, backend.handler())

	_, err := store.LoginUser(context.Background(), "ana@despacho.com", "correcta123")
	require.NoError(t, err)

	store.UserValid(context.Background())
	first := store.State()
	store.UserValid(context.Background())
	second := store.State()

	assert.Equal(t, first.Authenticated, second.Authenticated)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestLogoutBestEffortWithDeadBackend(t *testing.T) {
	backend := newFakeBackend()
	store, server := newTestStore(t, backend.handler())

	_, err := store.LoginUser(context.Background(), "ana@despacho.com", "correcta123")
	require.NoError(t, err)

	server.Close()

	// Logout never fails: the local session is dropped regardless.
	store.Logout(context.Background())

	state := store.State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
}

func TestRegisterUserFailSoft(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail": "El correo ya está registrado"}`))
	})

	store, _ := newTestStore(t, mux)

	ok := store.RegisterUser(context.Background(), "Ana", "ana@despacho.com", "pw12345678")
	assert.False(t, ok)

	// Registration never authenticates by itself.
	assert.False(t, store.State().Authenticated)
}

func TestCookieSnapshotRoundtrip(t *testing.T) {
	backend := newFakeBackend()
	store, server := newTestStore(t, backend.handler())

	_, err := store.LoginUser(context.Background(), "ana@despacho.com", "correcta123")
	require.NoError(t, err)

	snapshot, err := store.CookieSnapshot()
	require.NoError(t, err)
	require.NotEmpty(t, snapshot)

	// A rebuilt store starts unauthenticated even with the cookies loaded.
	api := apiclient.New(server.URL, 5*time.Second, nil)
	restored, err := NewStore("sess-1", api, nil)
	require.NoError(t, err)
	require.NoError(t, restored.RestoreCookies(snapshot))

	assert.False(t, restored.State().Authenticated)

	// Re-validation proves the cookies are still good.
	restored.UserValid(context.Background())
	state := restored.State()
	require.True(t, state.Authenticated)
	assert.Equal(t, "u1", state.User.ID)
}
