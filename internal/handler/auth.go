package handler

import (
	"errors"
	"net/http"
	"time"

	"dayflow/internal/apierror"
	"dayflow/internal/dto"
	"dayflow/internal/middleware"
	"dayflow/internal/service"
	"dayflow/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	svc   service.AuthService
	store session.Store
}

func NewAuthHandler(svc service.AuthService, store session.Store) *AuthHandler {
	return &AuthHandler{svc: svc, store: store}
}

// Signup creates an unverified account and queues the verification email.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully! Please verify your email.",
		"user":    resp,
	})
}

// VerifyEmail consumes the single-use token from the emailed link.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	msg, err := h.svc.VerifyEmail(c.Request.Context(), c.Query("token"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Login verifies credentials and establishes the server-side session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, apierror.New("Invalid login credentials."))
			return
		}
		respondServiceError(c, err)
		return
	}

	sid, err := h.store.Create(c.Request.Context(), &session.Data{
		UserID:       user.ID,
		Role:         user.Role,
		EmployeeCode: user.EmployeeCode,
		LastActivity: time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")
		c.JSON(http.StatusInternalServerError, apierror.New("Something went wrong. Please try again."))
		return
	}

	// HttpOnly: the cookie is an opaque handle, never script-readable.
	c.SetCookie(session.CookieName, sid, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful.",
		"redirect": "/dashboard",
		"role":     string(user.Role),
	})
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	if ident != nil {
		if err := h.store.Destroy(c.Request.Context(), ident.SessionID); err != nil {
			log.Error().Err(err).Msg("failed to destroy session")
		}
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
