package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/roles"
	"lexportal/internal/session"
)

const (
	// ContextSession is the gin context key holding the resolved session store.
	ContextSession = "session_store"
	// ContextUser is the gin context key holding the authenticated user.
	ContextUser = "session_user"
)

// Guard protects a route group with an allow-list of roles. An empty list
// admits any authenticated user.
//
// Resolution order: gateway cookie -> session store -> snapshot. If the
// snapshot is unauthenticated the store re-validates against the backend
// before the snapshot is read again; the handler only ever runs with a
// snapshot that passed the allow-list. Browsers get redirects, API calls
// get bare status codes with no body.
func Guard(services interfaces.Services, allowed ...roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := resolveStore(c, services)
		if store == nil {
			deny(c, http.StatusUnauthorized, roles.LoginRoute)
			return
		}

		state := store.State()
		if !state.Authenticated {
			store.UserValid(c.Request.Context())
			if err := services.SessionManager().Persist(store); err != nil {
				services.GetLogger().Warning("failed to persist session %s: %v", store.ID(), err)
			}
			// UserValid may have changed the snapshot either way;
			// decisions below must use the fresh read.
			state = store.State()
		}

		if !state.Authenticated {
			deny(c, http.StatusUnauthorized, roles.LoginRoute)
			return
		}

		if len(allowed) > 0 && !state.User.Role.In(allowed...) {
			deny(c, http.StatusForbidden, state.User.Role.HomeRoute())
			return
		}

		c.Set(ContextSession, store)
		c.Set(ContextUser, state.User)
		c.Next()
	}
}

// resolveStore loads the session store referenced by the gateway cookie,
// or nil when there is no usable session.
func resolveStore(c *gin.Context, services interfaces.Services) *session.Store {
	cfg := services.SessionManager().Config()

	token, err := c.Cookie(cfg.CookieName)
	if err != nil || token == "" {
		return nil
	}

	store, err := services.SessionManager().Resolve(token)
	if err != nil {
		return nil
	}
	return store
}

// deny aborts the request: page loads are redirected, everything else gets
// the status code and an empty body.
func deny(c *gin.Context, status int, redirect string) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, redirect)
		c.Abort()
		return
	}
	c.AbortWithStatus(status)
}

func wantsHTML(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return false
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// StoreFromContext returns the session store the guard attached, or nil.
func StoreFromContext(c *gin.Context) *session.Store {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	store, _ := v.(*session.Store)
	return store
}
