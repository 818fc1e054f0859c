package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"dayflow/internal/apierror"
	"dayflow/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	// CSRFFormField is the hidden form field carried by every mutating
	// submission. An X-CSRF-Token header is accepted as an equivalent.
	CSRFFormField  = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRFGuard issues a per-session token (generated once, cached for the
// session's lifetime) and verifies it on every state-changing request with a
// constant-time comparison. Mismatches are rejected before any repository
// call. Must run after SessionAuth.
func CSRFGuard(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Something went wrong. Please try again."))
			return
		}

		if ident.CSRFToken == "" {
			token, err := newToken()
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Something went wrong. Please try again."))
				return
			}
			ident.CSRFToken = token
			if err := store.Save(c.Request.Context(), ident.SessionID, ident.Data); err != nil {
				log.Error().Err(err).Msg("failed to persist csrf token")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Something went wrong. Please try again."))
				return
			}
		}

		if isMutating(c.Request.Method) {
			submitted := c.PostForm(CSRFFormField)
			if submitted == "" {
				submitted = c.GetHeader(CSRFHeaderName)
			}
			if subtle.ConstantTimeCompare([]byte(submitted), []byte(ident.CSRFToken)) != 1 {
				c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("Invalid security token. Please try again."))
				return
			}
		}

		c.Next()
	}
}

// CSRFToken returns the caller's per-session token for embedding in forms.
func CSRFToken(c *gin.Context) string {
	ident := GetIdentity(c)
	if ident == nil {
		return ""
	}
	return ident.CSRFToken
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
