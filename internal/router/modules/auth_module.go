package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/clubware/server/internal/infrastructure/redisstore"
	handlers "github.com/clubware/server/internal/interface/http"
	"github.com/clubware/server/internal/interface/middleware"
	"github.com/clubware/server/pkg/helpers"
)

// AuthModule wires signup verification and credential sign-in.
// Public: /auth/signup, /auth/verify, /auth/register, /login, /refresh
// Session-gated: /logout, /profile
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Sessions *redisstore.SessionStore
	JWT      *helpers.JWTManager
	RDB      *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, sessions *redisstore.SessionStore, jwt *helpers.JWTManager, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Sessions: sessions, JWT: jwt, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.RDB, 5, time.Minute, middleware.KeyByIPAndPath())
	verifyLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIP())

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/verify", verifyLimiter, m.Handler.Verify)
	rg.POST("/auth/register", verifyLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", loginLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions, m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
	}
}
