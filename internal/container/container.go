package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/clubware/server/config"
	"github.com/clubware/server/pkg/helpers"
)

// Container holds the infrastructure built once at startup. It is
// constructed in main and passed down explicitly; nothing here is a
// package-level singleton.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	PGPool *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	JWT    *helpers.JWTManager
	Rabbit *helpers.RabbitPublisher
	ES     *elasticsearch.Client
}

// Close tears the infrastructure down in reverse construction order.
func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
