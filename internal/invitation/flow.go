package invitation

import (
	"context"
	"sync"

	"lexportal/internal/apiclient"
	"lexportal/pkg/logger"
)

// State of the invitation flow. Transitions:
// Loading -> {Error, Ready} -> Submitting -> {Success, Ready-with-error}.
// A verification failure is terminal for the flow; an acceptance failure is
// recoverable and allows resubmission.
type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// User-facing messages; the product ships in Spanish.
const (
	MsgNoToken          = "No se proporcionó un token de invitación"
	MsgInvalidOrExpired = "La invitación no es válida o ha expirado"
	MsgPasswordMismatch = "Las contraseñas no coinciden"
	MsgPasswordTooShort = "La contraseña debe tener al menos 8 caracteres"
	MsgGenericFailure   = "No se pudo completar la solicitud. Inténtalo de nuevo."
)

// MinPasswordLength is the local strength check applied before any network
// call.
const MinPasswordLength = 8

// ValidationError is a local form check failure. It never reaches the
// network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Flow drives one invitation acceptance. Verification failure parks the flow
// in a terminal Error state; acceptance failure returns it to Ready so the
// user may retry with corrected input.
type Flow struct {
	api *apiclient.Client
	log *logger.Logger

	mu     sync.Mutex
	state  State
	token  string
	invite *apiclient.Invitation
	errMsg string
}

// NewFlow creates a flow in the Loading state.
func NewFlow(api *apiclient.Client, log *logger.Logger) *Flow {
	return &Flow{api: api, log: log, state: StateLoading}
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Invitation returns the verified invitation, or nil before verification.
func (f *Flow) Invitation() *apiclient.Invitation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invite
}

// ErrorMessage returns the current user-facing error, if any.
func (f *Flow) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Start verifies the invitation token. An empty token transitions straight
// to Error without any backend call; a failed verification is terminal for
// the flow.
func (f *Flow) Start(ctx context.Context, token string) {
	if token == "" {
		f.fail(MsgNoToken)
		return
	}

	invite, err := f.api.VerifyInvitation(ctx, token)
	if err != nil {
		if f.log != nil {
			f.log.Warning("invitation verification failed: %v", err)
		}
		f.fail(MsgInvalidOrExpired)
		return
	}

	f.mu.Lock()
	f.state = StateReady
	f.token = token
	f.invite = invite
	f.errMsg = ""
	f.mu.Unlock()
}

// Resume places the flow in Ready for an already-verified token, so an
// acceptance request can be processed without re-verifying.
func (f *Flow) Resume(token string) {
	f.mu.Lock()
	f.state = StateReady
	f.token = token
	f.mu.Unlock()
}

// Submit validates the form locally and then accepts the invitation.
// Mismatched or weak passwords surface a ValidationError without any network
// call. On acceptance failure the flow returns to Ready with the backend's
// message when present, so the user may resubmit.
func (f *Flow) Submit(ctx context.Context, fullName, password, confirm string) error {
	f.mu.Lock()
	if f.state != StateReady {
		state := f.state
		f.mu.Unlock()
		return &ValidationError{Message: string(state) + ": la invitación no está lista para enviarse"}
	}
	token := f.token
	f.state = StateSubmitting
	f.mu.Unlock()

	if err := validateForm(password, confirm); err != nil {
		f.mu.Lock()
		f.state = StateReady
		f.errMsg = err.Message
		f.mu.Unlock()
		return err
	}

	if err := f.api.AcceptInvitation(ctx, token, fullName, password); err != nil {
		msg := MsgGenericFailure
		if be, ok := apiclient.AsBackendError(err); ok {
			msg = be.Message
		}
		f.mu.Lock()
		f.state = StateReady
		f.errMsg = msg
		f.mu.Unlock()
		if f.log != nil {
			f.log.Warning("invitation acceptance failed: %v", err)
		}
		return err
	}

	f.mu.Lock()
	f.state = StateSuccess
	f.errMsg = ""
	f.mu.Unlock()
	return nil
}

func validateForm(password, confirm string) *ValidationError {
	if password != confirm {
		return &ValidationError{Field: "confirm_password", Message: MsgPasswordMismatch}
	}
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: MsgPasswordTooShort}
	}
	return nil
}

func (f *Flow) fail(msg string) {
	f.mu.Lock()
	f.state = StateError
	f.errMsg = msg
	f.mu.Unlock()
}
