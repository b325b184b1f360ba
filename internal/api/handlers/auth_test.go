package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexportal/internal/apiclient"
	"lexportal/internal/database"
	"lexportal/internal/database/repositories"
	"lexportal/internal/session"
	"lexportal/pkg/config"
	"lexportal/pkg/logger"
)

type testServices struct {
	log      *logger.Logger
	cfg      *config.Config
	client   *apiclient.Client
	sessions *session.Manager
	repo     *repositories.SessionRepository
	audit    *repositories.AuditLogRepository
}

func (s *testServices) GetLogger() *logger.Logger                           { return s.log }
func (s *testServices) GetConfig() *config.Config                           { return s.cfg }
func (s *testServices) APIClient() *apiclient.Client                        { return s.client }
func (s *testServices) SessionManager() *session.Manager                    { return s.sessions }
func (s *testServices) SessionRepository() *repositories.SessionRepository  { return s.repo }
func (s *testServices) AuditLogRepository() *repositories.AuditLogRepository { return s.audit }

// newAuthBackend fakes the practice-management auth endpoints with one
// known account.
func newAuthBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		if body.Password != "correcta123" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Credenciales incorrectas"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "backend_session", Value: "s1", Path: "/"})
	})

	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("backend_session"); err != nil || c.Value != "s1" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "u1", "full_name": "Ana Pérez", "email": "ana@despacho.com", "role": "client"}`))
	})

	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newHandlerServices(t *testing.T, backendURL string) *testServices {
	t.Helper()

	db, err := database.NewConnection(&config.DatabaseConfig{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "handlers.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))

	log := logger.NewLogger("error", "")
	client := apiclient.New(backendURL, 5*time.Second, nil)
	repo := repositories.NewSessionRepository(db)
	sessions := session.NewManager(client, repo, config.SessionConfig{
		CookieName: "lexportal_session",
		Secret:     "0123456789abcdef0123456789abcdef",
		TTL:        time.Hour,
	}, log)

	return &testServices{
		log:      log,
		cfg:      &config.Config{},
		client:   client,
		sessions: sessions,
		repo:     repo,
		audit:    repositories.NewAuditLogRepository(db),
	}
}

func newAuthRouter(services *testServices) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", Login(services))
	router.POST("/auth/logout", Logout(services))
	router.GET("/auth/session", GetSession(services))
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSetsCookieAndRedirect(t *testing.T) {
	backend := newAuthBackend(t)
	services := newHandlerServices(t, backend.URL)
	router := newAuthRouter(services)

	w := postJSON(router, "/auth/login", map[string]string{
		"email":    "ana@despacho.com",
		"password": "correcta123",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			User struct {
				ID   string `json:"id"`
				Role string `json:"role"`
			} `json:"user"`
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "u1", resp.Data.User.ID)

	// Clients land on the portal home.
	assert.Equal(t, "/portal-cliente", resp.Data.Redirect)

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "lexportal_session" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)
	assert.NotEmpty(t, sessionCookie.Value)
}

func TestLoginWrongPassword(t *testing.T) {
	backend := newAuthBackend(t)
	services := newHandlerServices(t, backend.URL)
	router := newAuthRouter(services)

	w := postJSON(router, "/auth/login", map[string]string{
		"email":    "ana@despacho.com",
		"password": "incorrecta",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)

	// The backend's message reaches the user untouched.
	assert.Equal(t, "Credenciales incorrectas", resp.Error.Message)
}

func TestLoginMissingFields(t *testing.T) {
	backend := newAuthBackend(t)
	services := newHandlerServices(t, backend.URL)
	router := newAuthRouter(services)

	w := postJSON(router, "/auth/login", map[string]string{"email": "ana@despacho.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionEndpointAfterLogin(t *testing.T) {
	backend := newAuthBackend(t)
	services := newHandlerServices(t, backend.URL)
	router := newAuthRouter(services)

	w := postJSON(router, "/auth/login", map[string]string{
		"email":    "ana@despacho.com",
		"password": "correcta123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)

	require.Equal(t, http.StatusOK, w2.Code)

	var resp struct {
		Data struct {
			Authenticated bool `json:"authenticated"`
			User          struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Authenticated)
	assert.Equal(t, "u1", resp.Data.User.ID)
}

func TestSessionEndpointAnonymous(t *testing.T) {
	backend := newAuthBackend(t)
	services := newHandlerServices(t, backend.URL)
	router := newAuthRouter(services)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Authenticated bool `json:"authenticated"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Authenticated)
}

func TestLogoutClearsSession(t *testing.T) {
	backend := newAuthBackend(t)
	services := newHandlerServices(t, backend.URL)
	router := newAuthRouter(services)

	w := postJSON(router, "/auth/login", map[string]string{
		"email":    "ana@despacho.com",
		"password": "correcta123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w2 := postJSON(router, "/auth/logout", nil, cookies...)
	require.Equal(t, http.StatusOK, w2.Code)

	// The gateway session is gone.
	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, req)

	var resp struct {
		Data struct {
			Authenticated bool `json:"authenticated"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w3.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Authenticated)
}
