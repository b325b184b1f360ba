package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"lexportal/internal/apiclient"
	"lexportal/pkg/logger"
)

// genericLoginError is shown when the backend rejects a login without a
// structured message.
const genericLoginError = "No se pudo iniciar sesión. Inténtalo de nuevo."

// State is a read-only snapshot of a session. Authenticated == true implies
// User != nil; no Store operation may leave the two in contradiction.
type State struct {
	User          *apiclient.User
	Authenticated bool
}

// Store is the single source of truth for who is logged in on one gateway
// session, backed by the backend's session cookie held in the store's own
// jar. Only the Store's methods mutate its state; everything else reads
// through State().
type Store struct {
	id         string
	api        *apiclient.Client
	jar        *cookiejar.Jar
	backendURL *url.URL
	log        *logger.Logger
	createdAt  time.Time

	mu            sync.RWMutex
	user          *apiclient.User
	authenticated bool
}

// NewStore creates an unauthenticated session store with a fresh cookie jar
// bound to the given API client.
func NewStore(id string, api *apiclient.Client, log *logger.Logger) (*Store, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	backendURL, err := url.Parse(api.BaseURL())
	if err != nil {
		return nil, err
	}
	return &Store{
		id:         id,
		api:        api.WithJar(jar),
		jar:        jar,
		backendURL: backendURL,
		log:        log,
		createdAt:  time.Now(),
	}, nil
}

// ID returns the gateway session ID.
func (s *Store) ID() string {
	return s.id
}

// CreatedAt returns when the session was created.
func (s *Store) CreatedAt() time.Time {
	return s.createdAt
}

// API returns the client bound to this session's cookie jar, for feature
// calls that must carry the user's backend credentials.
func (s *Store) API() *apiclient.Client {
	return s.api
}

// State returns the current session snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{User: s.user, Authenticated: s.authenticated}
}

// LoginUser authenticates against the backend and then fetches the
// authoritative user object. The second call is never issued when the first
// fails. When the follow-up fetch yields no user, the store resets to
// unauthenticated before returning the error so the session can never be
// "authenticated but without a user".
func (s *Store) LoginUser(ctx context.Context, email, password string) (*apiclient.User, error) {
	if err := s.api.Login(ctx, email, password); err != nil {
		if be, ok := apiclient.AsBackendError(err); ok {
			return nil, &AuthError{Message: be.Message, Err: err}
		}
		return nil, &AuthError{Message: genericLoginError, Err: err}
	}

	user, err := s.api.Me(ctx)
	if err != nil || user == nil {
		s.clear()
		if s.log != nil {
			s.log.SecurityLogger("login_user_fetch_failed", email, "login succeeded but user fetch returned nothing")
		}
		return nil, &AuthError{Message: genericLoginError, Err: err}
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()

	if s.log != nil {
		s.log.SessionLogger("login", s.id, "user "+user.ID+" authenticated")
	}
	return user, nil
}

// UserValid re-validates the session against the backend. On any failed or
// empty response the session is cleared to unauthenticated. It never trusts
// the previous snapshot; callers must re-read State() after it returns.
func (s *Store) UserValid(ctx context.Context) {
	user, err := s.api.Me(ctx)
	if err != nil || user == nil {
		if err != nil && s.log != nil {
			s.log.Debug("session %s re-validation failed: %v", s.id, err)
		}
		s.clear()
		return
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
}

// Logout invalidates the backend session best-effort and always leaves the
// store logged out. Network failures are logged, never propagated.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		if s.log != nil {
			s.log.Warning("logout call failed for session %s: %v", s.id, err)
		}
	}
	s.clear()
	if s.log != nil {
		s.log.SessionLogger("logout", s.id, "session logged out")
	}
}

// RegisterUser creates a new account. It returns false on any failure and
// never an error; callers show a generic message. This fail-soft contract is
// deliberately different from LoginUser's.
func (s *Store) RegisterUser(ctx context.Context, fullName, email, password string) bool {
	if err := s.api.Register(ctx, fullName, email, password); err != nil {
		if s.log != nil {
			s.log.Warning("registration failed for %s: %v", email, err)
		}
		return false
	}
	return true
}

// UpdateProfile updates the current user's profile and refreshes the cached
// user snapshot on success.
func (s *Store) UpdateProfile(ctx context.Context, fullName string) (*apiclient.User, error) {
	user, err := s.api.UpdateProfile(ctx, fullName)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.authenticated {
		s.user = user
	}
	s.mu.Unlock()
	return user, nil
}

// ChangePassword changes the current user's password.
func (s *Store) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return s.api.ChangePassword(ctx, currentPassword, newPassword)
}

func (s *Store) clear() {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()
}

// cookieSnapshot is the persisted form of the backend cookies.
type cookieSnapshot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CookieSnapshot serializes the backend session cookies so a gateway session
// survives a process restart.
func (s *Store) CookieSnapshot() ([]byte, error) {
	cookies := s.jar.Cookies(s.backendURL)
	snapshot := make([]cookieSnapshot, 0, len(cookies))
	for _, c := range cookies {
		snapshot = append(snapshot, cookieSnapshot{Name: c.Name, Value: c.Value})
	}
	return json.Marshal(snapshot)
}

// RestoreCookies loads a cookie snapshot into the jar. The restored session
// stays unauthenticated until UserValid confirms the cookies are still good;
// the cached user is never trusted across restarts.
func (s *Store) RestoreCookies(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var snapshot []cookieSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return err
	}
	cookies := make([]*http.Cookie, 0, len(snapshot))
	for _, c := range snapshot {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	s.jar.SetCookies(s.backendURL, cookies)
	return nil
}
