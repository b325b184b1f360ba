package session

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexportal/internal/apiclient"
	"lexportal/internal/database"
	"lexportal/internal/database/repositories"
	"lexportal/pkg/config"
	"lexportal/pkg/logger"
)

func newTestManager(t *testing.T, backendURL string, ttl time.Duration) (*Manager, *repositories.SessionRepository) {
	t.Helper()

	db, err := database.NewConnection(&config.DatabaseConfig{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "sessions.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))

	repo := repositories.NewSessionRepository(db)
	api := apiclient.New(backendURL, 5*time.Second, nil)
	cfg := config.SessionConfig{
		CookieName: "lexportal_session",
		Secret:     "0123456789abcdef0123456789abcdef",
		TTL:        ttl,
	}

	return NewManager(api, repo, cfg, logger.NewLogger("error", "")), repo
}

func TestCreateResolveRoundtrip(t *testing.T) {
	mgr, _ := newTestManager(t, "http://localhost:1", time.Hour)

	store, token, err := mgr.Create()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := mgr.Resolve(token)
	require.NoError(t, err)
	assert.Same(t, store, resolved)
	assert.Equal(t, 1, mgr.ActiveCount())
}

func TestResolveGarbageToken(t *testing.T) {
	mgr, _ := newTestManager(t, "http://localhost:1", time.Hour)

	_, err := mgr.Resolve("not-a-jwt")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResolveWrongSecret(t *testing.T) {
	mgr, _ := newTestManager(t, "http://localhost:1", time.Hour)

	token, err := SignSessionToken("another-secret-another-secret-xx", "sess-x", time.Hour)
	require.NoError(t, err)

	_, err = mgr.Resolve(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResolveRebuildsFromDatabase(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	mgr, repo := newTestManager(t, server.URL, time.Hour)

	store, token, err := mgr.Create()
	require.NoError(t, err)

	_, err = store.LoginUser(context.Background(), "ana@despacho.com", "correcta123")
	require.NoError(t, err)
	require.NoError(t, mgr.Persist(store))

	// Simulate a restart: fresh manager over the same repository.
	api := apiclient.New(server.URL, 5*time.Second, nil)
	restarted := NewManager(api, repo, mgr.Config(), logger.NewLogger("error", ""))

	rebuilt, err := restarted.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, store.ID(), rebuilt.ID())

	// Rebuilt sessions are never trusted until re-validated.
	assert.False(t, rebuilt.State().Authenticated)

	rebuilt.UserValid(context.Background())
	state := rebuilt.State()
	require.True(t, state.Authenticated)
	assert.Equal(t, "u1", state.User.ID)
}

func TestResolveExpiredSession(t *testing.T) {
	mgr, repo := newTestManager(t, "http://localhost:1", 10*time.Millisecond)

	store, token, err := mgr.Create()
	require.NoError(t, err)

	// Expire it in storage and drop it from memory.
	rec, err := repo.GetByID(store.ID())
	require.NoError(t, err)
	rec.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, repo.Upsert(rec))
	mgr.Destroy(store)

	// Destroy removed the record; put the expired one back.
	require.NoError(t, repo.Upsert(rec))

	_, err = mgr.Resolve(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDestroyRemovesEverywhere(t *testing.T) {
	mgr, repo := newTestManager(t, "http://localhost:1", time.Hour)

	store, token, err := mgr.Create()
	require.NoError(t, err)

	mgr.Destroy(store)
	assert.Equal(t, 0, mgr.ActiveCount())

	rec, err := repo.GetByID(store.ID())
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = mgr.Resolve(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionTokenRoundtrip(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"

	token, err := SignSessionToken(secret, "sess-42", time.Hour)
	require.NoError(t, err)

	id, err := ParseSessionToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", id)
}

func TestSessionTokenExpired(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"

	token, err := SignSessionToken(secret, "sess-42", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken(secret, token)
	assert.Error(t, err)
}
