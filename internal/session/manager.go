package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"lexportal/internal/apiclient"
	"lexportal/internal/database"
	"lexportal/pkg/config"
	"lexportal/pkg/logger"
)

// Repository persists gateway sessions so a browser cookie survives a
// process restart.
type Repository interface {
	Upsert(rec *database.SessionRecord) error
	GetByID(id string) (*database.SessionRecord, error)
	Delete(id string) error
	DeleteExpired(now time.Time) (int64, error)
}

// Manager owns the live session stores and their persistence. It resolves
// gateway cookies to stores, rebuilding from the database after a restart.
type Manager struct {
	api  *apiclient.Client
	repo Repository
	cfg  config.SessionConfig
	log  *logger.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a session manager.
func NewManager(api *apiclient.Client, repo Repository, cfg config.SessionConfig, log *logger.Logger) *Manager {
	return &Manager{
		api:    api,
		repo:   repo,
		cfg:    cfg,
		log:    log,
		stores: make(map[string]*Store),
	}
}

// Config returns the session configuration (cookie name, TTL, flags).
func (m *Manager) Config() config.SessionConfig {
	return m.cfg
}

// Create makes a new unauthenticated session and returns the store together
// with the signed cookie token.
func (m *Manager) Create() (*Store, string, error) {
	id := uuid.NewString()
	store, err := NewStore(id, m.api, m.log)
	if err != nil {
		return nil, "", err
	}

	token, err := SignSessionToken(m.cfg.Secret, id, m.cfg.TTL)
	if err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	m.stores[id] = store
	m.mu.Unlock()

	if err := m.Persist(store); err != nil {
		m.log.Warning("failed to persist new session %s: %v", id, err)
	}

	return store, token, nil
}

// Resolve maps a gateway cookie token to a session store. Live stores are
// returned directly; otherwise the session is rebuilt from the database with
// its backend cookies restored but unauthenticated, so the route guard's
// silent re-validation decides whether the cookies are still good.
func (m *Manager) Resolve(token string) (*Store, error) {
	id, err := ParseSessionToken(m.cfg.Secret, token)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	m.mu.Lock()
	if store, ok := m.stores[id]; ok {
		m.mu.Unlock()
		return store, nil
	}
	m.mu.Unlock()

	rec, err := m.repo.GetByID(id)
	if err != nil || rec == nil {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(rec.ExpiresAt) {
		_ = m.repo.Delete(id)
		return nil, ErrSessionNotFound
	}

	store, err := NewStore(id, m.api, m.log)
	if err != nil {
		return nil, err
	}
	if err := store.RestoreCookies(rec.Cookies); err != nil {
		m.log.Warning("failed to restore cookies for session %s: %v", id, err)
	}

	m.mu.Lock()
	// another request may have rebuilt the store concurrently; keep the first
	if existing, ok := m.stores[id]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.stores[id] = store
	m.mu.Unlock()

	m.log.SessionLogger("restored", id, "session rebuilt from persistence")
	return store, nil
}

// Persist writes the session's current state to the database.
func (m *Manager) Persist(store *Store) error {
	cookies, err := store.CookieSnapshot()
	if err != nil {
		return err
	}

	rec := &database.SessionRecord{
		ID:        store.ID(),
		Cookies:   cookies,
		CreatedAt: store.CreatedAt(),
		UpdatedAt: time.Now(),
		ExpiresAt: store.CreatedAt().Add(m.cfg.TTL),
	}
	if state := store.State(); state.Authenticated {
		rec.UserID = state.User.ID
	}

	return m.repo.Upsert(rec)
}

// Destroy removes a session from memory and storage.
func (m *Manager) Destroy(store *Store) {
	m.mu.Lock()
	delete(m.stores, store.ID())
	m.mu.Unlock()

	if err := m.repo.Delete(store.ID()); err != nil {
		m.log.Warning("failed to delete session %s: %v", store.ID(), err)
	}
}

// ActiveCount returns the number of sessions held in memory.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

// ExpiresAt returns when the session will expire.
func (m *Manager) ExpiresAt(store *Store) time.Time {
	return store.CreatedAt().Add(m.cfg.TTL)
}

// StartCleanup purges expired sessions periodically until ctx is done.
func (m *Manager) StartCleanup(ctx context.Context) {
	interval := m.cfg.CleanupInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) cleanup() {
	now := time.Now()

	if n, err := m.repo.DeleteExpired(now); err != nil {
		m.log.Warning("session cleanup failed: %v", err)
	} else if n > 0 {
		m.log.Info("session cleanup removed %d expired sessions", n)
	}

	m.mu.Lock()
	for id, store := range m.stores {
		if now.After(store.CreatedAt().Add(m.cfg.TTL)) {
			delete(m.stores, id)
		}
	}
	m.mu.Unlock()
}
