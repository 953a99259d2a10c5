package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clubware/server/internal/application"
	"github.com/clubware/server/internal/infrastructure/redisstore"
	"github.com/clubware/server/pkg/helpers"
	"github.com/clubware/server/pkg/response"
	"github.com/clubware/server/pkg/validation"
)

// AuthHandler exposes the signup verification flow and credential
// sign-in.
type AuthHandler struct {
	Svc      *application.AuthService
	Sessions *redisstore.SessionStore
	Logger   *logrus.Logger
	Cookies  *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, sessions *redisstore.SessionStore, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Sessions: sessions, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signupRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Signup POST /api/auth/signup {email}
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RequestVerification(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, application.ErrConflict):
			response.Error[any](c, http.StatusConflict, "user already exists", nil)
		default:
			h.Logger.WithError(err).Warn("signup request failed")
			response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "verification email sent")
}

type verifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// Verify POST /api/auth/verify {email, token}
func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	valid, err := h.Svc.VerifyToken(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		h.Logger.WithError(err).Warn("token verification failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"valid": valid}, "token checked")
}

type registerRequest struct {
	Token string `json:"token" binding:"required"`
	User  struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"omitempty,pwdhash"`
		Name     string `json:"name"`
	} `json:"user" binding:"required"`
}

// Register POST /api/auth/register {token, user:{email,password,name}}
// Password arrives as a hex SHA-256 digest chosen on the verify page.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	_, err := h.Svc.CreateUser(c.Request.Context(), req.Token, application.CreateUserInput{
		Email:    req.User.Email,
		Password: req.User.Password,
		Name:     req.User.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidToken):
			response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
		default:
			h.Logger.WithError(err).Warn("account creation failed")
			response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"created": true}, "account created")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/login {email, password}
// Returns the caller's own profile including the bearer secret used
// for authenticated dashboard calls.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if h.Sessions != nil {
		if sErr := h.Sessions.Save(c.Request.Context(), u.ID, u.Email, u.Name); sErr != nil {
			h.Logger.WithError(sErr).WithField("user", u.ID).Warn("failed to record session")
		}
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"name":        u.Name,
		"image":       u.Image,
		"permissions": u.Permissions,
		"secret":      u.Secret,
	}, "login successful")
}

// Profile GET /api/profile (session required)
func (h *AuthHandler) Profile(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"name":        u.Name,
		"image":       u.Image,
		"permissions": u.Permissions,
	}, "profile")
}

// Refresh POST /api/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed")
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if uid := c.GetString("userID"); uid != "" && h.Sessions != nil {
		_ = h.Sessions.Delete(c.Request.Context(), uid)
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out")
}
