package invitation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexportal/internal/apiclient"
)

type fakeInvitations struct {
	validToken string

	verifyCalls atomic.Int64
	acceptCalls atomic.Int64
	acceptFails bool
	failMessage string
}

func (f *fakeInvitations) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/invitations/accept", func(w http.ResponseWriter, r *http.Request) {
		f.acceptCalls.Add(1)
		if f.acceptFails {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail": "` + f.failMessage + `"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/api/invitations/", func(w http.ResponseWriter, r *http.Request) {
		f.verifyCalls.Add(1)
		token := r.URL.Path[len("/api/invitations/"):]
		if token != f.validToken {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Invitación no encontrada"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token": "` + token + `", "email": "cliente@example.com", "case_title": "Divorcio exprés", "client_name": "Luis Romero"}`))
	})

	return mux
}

func newTestFlow(t *testing.T, fake *fakeInvitations) *Flow {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	api := apiclient.New(server.URL, 5*time.Second, nil)
	return NewFlow(api, nil)
}

func TestStartValidToken(t *testing.T) {
	fake := &fakeInvitations{validToken: "tok-1"}
	flow := newTestFlow(t, fake)

	assert.Equal(t, StateLoading, flow.State())

	flow.Start(context.Background(), "tok-1")

	assert.Equal(t, StateReady, flow.State())
	require.NotNil(t, flow.Invitation())
	assert.Equal(t, "cliente@example.com", flow.Invitation().Email)
	assert.Equal(t, "Luis Romero", flow.Invitation().ClientName)
	assert.Empty(t, flow.ErrorMessage())
}

func TestStartMissingTokenNoNetwork(t *testing.T) {
	fake := &fakeInvitations{validToken: "tok-1"}
	flow := newTestFlow(t, fake)

	flow.Start(context.Background(), "")

	assert.Equal(t, StateError, flow.State())
	assert.Equal(t, MsgNoToken, flow.ErrorMessage())
	assert.Equal(t, int64(0), fake.verifyCalls.Load())
}

func TestStartInvalidTokenIsTerminal(t *testing.T) {
	fake := &fakeInvitations{validToken: "tok-1"}
	flow := newTestFlow(t, fake)

	flow.Start(context.Background(), "tok-expired")

	assert.Equal(t, StateError, flow.State())
	assert.Equal(t, MsgInvalidOrExpired, flow.ErrorMessage())

	// A flow parked in Error refuses submissions.
	err := flow.Submit(context.Background(), "Luis", "password123", "password123")
	require.Error(t, err)
	assert.Equal(t, int64(0), fake.acceptCalls.Load())
}

func TestSubmitPasswordMismatchNoNetwork(t *testing.T) {
	fake := &fakeInvitations{validToken: "tok-1"}
	flow := newTestFlow(t, fake)
	flow.Start(context.Background(), "tok-1")

	err := flow.Submit(context.Background(), "Luis", "password123", "password124")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, MsgPasswordMismatch, vErr.Message)
	assert.Equal(t, "confirm_password", vErr.Field)

	// Mismatch is caught before the request is ever built.
	assert.Equal(t, int64(0), fake.acceptCalls.Load())

	// The flow stays usable.
	assert.Equal(t, StateReady, flow.State())
}

func TestSubmitShortPasswordNoNetwork(t *testing.T) {
	fake := &fakeInvitations{validToken: "tok-1"}
	flow := newTestFlow(t, fake)
	flow.Start(context.Background(), "tok-1")

	err := flow.Submit(context.Background(), "Luis", "corta", "corta")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, MsgPasswordTooShort, vErr.Message)
	assert.Equal(t, int64(0), fake.acceptCalls.Load())
	assert.Equal(t, StateReady, flow.State())
}

func TestSubmitSuccess(t *testing.T) {
	fake := &fakeInvitations{validToken: "tok-1"}
	flow := newTestFlow(t, fake)
	flow.Start(context.Background(), "tok-1")

	err := flow.Submit(context.Background(), "Luis Romero", "password123", "password123")
	require.NoError(t, err)

	assert.Equal(t, StateSuccess, flow.State())
	assert.Empty(t, flow.ErrorMessage())
	assert.Equal(t, int64(1), fake.acceptCalls.Load())
}

func TestSubmitBackendRejectionIsRecoverable(t *testing.T) {
	fake := &fakeInvitations{
		validToken:  "tok-1",
		acceptFails: true,
		failMessage: "La invitación ya fue utilizada",
	}
	flow := newTestFlow(t, fake)
	flow.Start(context.Background(), "tok-1")

	err := flow.Submit(context.Background(), "Luis", "password123", "password123")
	require.Error(t, err)

	// Backend message verbatim, flow back at Ready for a retry.
	assert.Equal(t, StateReady, flow.State())
	assert.Equal(t, "La invitación ya fue utilizada", flow.ErrorMessage())

	fake.acceptFails = false
	err = flow.Submit(context.Background(), "Luis", "password123", "password123")
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, flow.State())
}

func TestSubmitNetworkFailureGenericMessage(t *testing.T) {
	fake := &fakeInvitations{validToken: "tok-1"}
	server := httptest.NewServer(fake.handler())

	api := apiclient.New(server.URL, time.Second, nil)
	flow := NewFlow(api, nil)
	flow.Start(context.Background(), "tok-1")

	server.Close()

	err := flow.Submit(context.Background(), "Luis", "password123", "password123")
	require.Error(t, err)
	assert.Equal(t, StateReady, flow.State())
	assert.Equal(t, MsgGenericFailure, flow.ErrorMessage())
}

func TestResumeAllowsAcceptWithoutReverify(t *testing.T) {
	fake := &fakeInvitations{validToken: "tok-1"}
	flow := newTestFlow(t, fake)

	flow.Resume("tok-1")
	assert.Equal(t, StateReady, flow.State())

	err := flow.Submit(context.Background(), "Luis", "password123", "password123")
	require.NoError(t, err)
	assert.Equal(t, int64(0), fake.verifyCalls.Load())
}
