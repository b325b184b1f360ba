package apiclient

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second, nil), server
}

func TestLoginSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	err := client.Login(context.Background(), "abogado@despacho.com", "secret")
	assert.NoError(t, err)
}

func TestBackendErrorKeepsMessageVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Credenciales incorrectas"}`))
	}))

	err := client.Login(context.Background(), "abogado@despacho.com", "wrong")
	require.Error(t, err)

	be, ok := AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, be.StatusCode)
	assert.Equal(t, "Credenciales incorrectas", be.Message)
}

func TestBackendErrorMessageField(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "El caso ya existe"}`))
	}))

	_, err := client.CreateCase(context.Background(), CaseInput{Title: "x", ClientID: "c1"})
	be, ok := AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, "El caso ya existe", be.Message)
}

func TestUnparseableErrorBodyIsNetworkError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway timeout</html>"))
	}))

	err := client.Login(context.Background(), "a@b.com", "x")
	require.Error(t, err)

	_, ok := AsBackendError(err)
	assert.False(t, ok)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := New(server.URL, time.Second, nil)
	err := client.Login(context.Background(), "a@b.com", "x")
	require.Error(t, err)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestMeEmptyBodyMeansNotAuthenticated(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	user, err := client.Me(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestWithJarCarriesSessionCookie(t *testing.T) {
	var sawCookie string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "backend_session", Value: "abc123", Path: "/"})
		case "/auth/me":
			if c, err := r.Cookie("backend_session"); err == nil {
				sawCookie = c.Value
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": "u1", "full_name": "Ana", "role": "lawyer"}`))
		}
	})

	base, _ := newTestClient(t, handler)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := base.WithJar(jar)

	require.NoError(t, client.Login(context.Background(), "ana@despacho.com", "pw"))

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "abc123", sawCookie)
}

func TestWithJarIsolatesSessions(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			http.SetCookie(w, &http.Cookie{Name: "backend_session", Value: "only-a", Path: "/"})
			return
		}
		if _, err := r.Cookie("backend_session"); err != nil {
			// no cookie: unauthenticated, empty body
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write([]byte(`{"id": "u1", "full_name": "Ana", "role": "lawyer"}`))
	})

	base, _ := newTestClient(t, handler)

	jarA, _ := cookiejar.New(nil)
	jarB, _ := cookiejar.New(nil)
	clientA := base.WithJar(jarA)
	clientB := base.WithJar(jarB)

	require.NoError(t, clientA.Login(context.Background(), "ana@despacho.com", "pw"))

	userA, err := clientA.Me(context.Background())
	require.NoError(t, err)
	require.NotNil(t, userA)

	// The second jar never saw the login; its session must stay anonymous.
	userB, err := clientB.Me(context.Background())
	require.NoError(t, err)
	assert.Nil(t, userB)
}
