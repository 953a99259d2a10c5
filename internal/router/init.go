package router

import (
	"github.com/clubware/server/internal/application"
	"github.com/clubware/server/internal/container"
	"github.com/clubware/server/internal/infrastructure/gcs"
	pginfra "github.com/clubware/server/internal/infrastructure/postgres"
	"github.com/clubware/server/internal/infrastructure/redisstore"
	handlers "github.com/clubware/server/internal/interface/http"
	"github.com/clubware/server/internal/router/modules"
)

// InitModules builds the repositories, services, and handlers from
// the container and registers every feature module. Called once at
// startup.
func InitModules(r *Registry, c *container.Container) {
	users := pginfra.NewUserRepository(c.PGPool)
	events := pginfra.NewEventRepository(c.PGPool)
	images := gcs.NewImageStore(c.GCS, c.Cfg.GCSBucket)
	tokens := redisstore.NewTokenStore(c.Redis, c.Cfg.SignupTokenTTL)
	sessions := redisstore.NewSessionStore(c.Redis, c.Cfg.RefreshTTL)

	authSvc := application.NewAuthService(users, tokens, c.Rabbit, c.JWT, c.Cfg, c.Logger)
	userSvc := application.NewUserService(users, c.Logger)
	eventSvc := application.NewEventService(events, users, images, c.Cfg.DefaultEventImg, c.Logger, c.ES, c.Cfg.ESEventsIndex)

	authH := handlers.NewAuthHandler(authSvc, sessions, c.Logger, c.Cfg.CookieDomain, c.Cfg.CookieSecure)
	userH := handlers.NewUserHandler(userSvc, c.Logger)
	eventH := handlers.NewEventHandler(eventSvc, c.Logger)

	r.Add(modules.NewAuthModule(authH, sessions, c.JWT, c.Redis))
	r.Add(modules.NewUserModule(userH, c.Redis))
	r.Add(modules.NewEventModule(eventH, c.Redis))
}
