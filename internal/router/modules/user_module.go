package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/clubware/server/internal/interface/http"
	"github.com/clubware/server/internal/interface/middleware"
)

// UserModule wires member lookups and the admin permission endpoints.
// Mutations carry their own bearer secret in the payload; the service
// layer authorizes.
type UserModule struct {
	Handler *handlers.UserHandler
	RDB     *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByIP())

	rg.GET("/users", limiter, m.Handler.GetAll)
	rg.POST("/users/exists", limiter, m.Handler.Exists)
	rg.POST("/users/get", limiter, m.Handler.GetByEmail)
	rg.PUT("/users/:id", limiter, m.Handler.Update)
	rg.POST("/users/:id/permissions/grant", limiter, m.Handler.Grant)
	rg.POST("/users/:id/permissions/revoke", limiter, m.Handler.Revoke)
}
