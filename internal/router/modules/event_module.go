package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/clubware/server/internal/interface/http"
	"github.com/clubware/server/internal/interface/middleware"
)

// EventModule wires the event lifecycle. Reads are public; mutations
// carry a bearer secret authorized in the service layer.
type EventModule struct {
	Handler *handlers.EventHandler
	RDB     *redis.Client
}

func NewEventModule(h *handlers.EventHandler, rdb *redis.Client) *EventModule {
	return &EventModule{Handler: h, RDB: rdb}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP())
	writeLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIP())

	rg.GET("/events", readLimiter, m.Handler.List)
	rg.GET("/events/search", readLimiter, m.Handler.Search)
	rg.GET("/events/:id", readLimiter, m.Handler.Get)
	rg.POST("/events", writeLimiter, m.Handler.Create)
	rg.PUT("/events/:id", writeLimiter, m.Handler.Update)
	rg.DELETE("/events/:id", writeLimiter, m.Handler.Delete)
}
