package middleware

import (
	"errors"
	"net/http"
	"time"

	"dayflow/internal/apierror"
	"dayflow/internal/model"
	"dayflow/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	IdentityKey = "identity"

	loginPath        = "/login"
	loginTimeoutPath = "/login?timeout=1"
)

// Identity is the authenticated caller attached to the Gin context by
// SessionAuth.
type Identity struct {
	SessionID string
	*session.Data
}

// SessionAuth is the auth gate in front of every protected route. It verifies
// the session cookie, enforces the idle timeout, and refreshes the
// last-activity timestamp — every protected request extends the session.
func SessionAuth(store session.Store, idleTimeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(session.CookieName)
		if err != nil || sid == "" {
			redirectToLogin(c, loginPath)
			return
		}

		data, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Error().Err(err).Msg("session lookup failed")
			}
			redirectToLogin(c, loginPath)
			return
		}

		now := time.Now()
		if now.Sub(data.LastActivity) > idleTimeout {
			if err := store.Destroy(c.Request.Context(), sid); err != nil {
				log.Error().Err(err).Msg("failed to destroy expired session")
			}
			clearSessionCookie(c)
			redirectToLogin(c, loginTimeoutPath)
			return
		}

		data.LastActivity = now
		if err := store.Save(c.Request.Context(), sid, data); err != nil {
			log.Error().Err(err).Msg("failed to refresh session")
			redirectToLogin(c, loginPath)
			return
		}

		c.Set(IdentityKey, &Identity{SessionID: sid, Data: data})
		c.Next()
	}
}

// RequireRole rejects requests whose session role is not in the allowed set.
// Terminal 403 — no further processing.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil || !allowed[ident.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Access denied. You do not have permission to view this page."))
			return
		}
		c.Next()
	}
}

// GetIdentity is a helper to retrieve the typed identity from the Gin context.
// Returns nil when the auth gate has not run.
func GetIdentity(c *gin.Context) *Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*Identity)
	return ident
}

func redirectToLogin(c *gin.Context, target string) {
	c.Redirect(http.StatusSeeOther, target)
	c.Abort()
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}
