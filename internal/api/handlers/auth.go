package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/api/models"
	"lexportal/internal/session"
)

// Login authenticates against the backend and binds the browser to a
// gateway session. The backend's rejection message is returned verbatim so
// the UI can show it as-is.
func Login(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store := resolveOrCreateSession(c, services)
		if store == nil {
			return
		}

		user, err := store.LoginUser(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			var authErr *session.AuthError
			if errors.As(err, &authErr) {
				createAuditLog(services, "login_failed", req.Email, store.ID(),
					"Login rejected", getClientIP(c))
				respondErrorCode(c, http.StatusUnauthorized, models.ErrCodeInvalidCredentials, authErr.Error())
				return
			}
			respondBackendError(c, err)
			return
		}

		if err := services.SessionManager().Persist(store); err != nil {
			services.GetLogger().Error("Failed to persist session %s: %v", store.ID(), err)
		}

		createAuditLog(services, "login", user.ID, store.ID(), "User logged in", getClientIP(c))

		respondOK(c, models.LoginResponse{
			User:     user,
			Redirect: user.Role.HomeRoute(),
		})
	}
}

// Logout ends the backend session best-effort and always drops the gateway
// session and cookie.
func Logout(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := services.SessionManager().Config()

		if token, err := c.Cookie(cfg.CookieName); err == nil && token != "" {
			if store, err := services.SessionManager().Resolve(token); err == nil {
				store.Logout(c.Request.Context())
				services.SessionManager().Destroy(store)
				createAuditLog(services, "logout", "", store.ID(), "User logged out", getClientIP(c))
			}
		}

		clearSessionCookie(c, services)
		respondOK(c, nil)
	}
}

// GetSession reports the current session state without forcing a login. An
// unauthenticated snapshot is re-validated against the backend first.
func GetSession(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := services.SessionManager().Config()

		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			respondOK(c, models.SessionResponse{Authenticated: false})
			return
		}

		store, err := services.SessionManager().Resolve(token)
		if err != nil {
			respondOK(c, models.SessionResponse{Authenticated: false})
			return
		}

		state := store.State()
		if !state.Authenticated {
			store.UserValid(c.Request.Context())
			state = store.State()
		}

		respondOK(c, models.SessionResponse{
			Authenticated: state.Authenticated,
			User:          state.User,
		})
	}
}

// Me returns the authenticated user behind the guard.
func Me(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		state := store.State()
		respondOK(c, models.SessionResponse{
			Authenticated: state.Authenticated,
			User:          state.User,
		})
	}
}

// Register creates an account. Failures are reported without detail so the
// endpoint cannot be used to probe existing emails.
func Register(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store := resolveOrCreateSession(c, services)
		if store == nil {
			return
		}

		if !store.RegisterUser(c.Request.Context(), req.FullName, req.Email, req.Password) {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeRegistrationFailed, "Registration failed")
			return
		}

		createAuditLog(services, "register", req.Email, store.ID(), "Account registered", getClientIP(c))
		respondCreated(c, nil)
	}
}

// ForgotPassword asks the backend to send a reset email. Always succeeds
// from the caller's point of view.
func ForgotPassword(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		if err := services.APIClient().ForgotPassword(c.Request.Context(), req.Email); err != nil {
			services.GetLogger().Warning("forgot-password request failed: %v", err)
		}

		respondOK(c, nil)
	}
}

// ResetPassword consumes a reset token.
func ResetPassword(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		if err := services.APIClient().ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, nil)
	}
}

// UpdateProfile updates the authenticated user's profile and refreshes the
// session snapshot.
func UpdateProfile(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		user, err := store.UpdateProfile(c.Request.Context(), req.FullName)
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, user)
	}
}

// ChangePassword changes the authenticated user's password.
func ChangePassword(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		if err := store.ChangePassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
			respondBackendError(c, err)
			return
		}

		createAuditLog(services, "password_changed", "", store.ID(), "Password changed", getClientIP(c))
		respondOK(c, nil)
	}
}

// resolveOrCreateSession reuses the session the browser already has, or
// mints a new one and sets the gateway cookie.
func resolveOrCreateSession(c *gin.Context, services interfaces.Services) *session.Store {
	cfg := services.SessionManager().Config()

	if token, err := c.Cookie(cfg.CookieName); err == nil && token != "" {
		if store, err := services.SessionManager().Resolve(token); err == nil {
			return store
		}
	}

	store, token, err := services.SessionManager().Create()
	if err != nil {
		services.GetLogger().Error("Failed to create session: %v", err)
		respondErrorCode(c, http.StatusInternalServerError, models.ErrCodeInternalError, "Internal server error")
		return nil
	}

	setSessionCookie(c, services, token)
	return store
}

func setSessionCookie(c *gin.Context, services interfaces.Services, token string) {
	cfg := services.SessionManager().Config()
	maxAge := int(cfg.TTL / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, token, maxAge, "/", "", cfg.CookieSecure, true)
}

func clearSessionCookie(c *gin.Context, services interfaces.Services) {
	cfg := services.SessionManager().Config()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.CookieSecure, true)
}
