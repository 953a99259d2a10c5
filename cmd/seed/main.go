package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/clubware/server/config"
	"github.com/clubware/server/internal/domain/entity"
	pginfra "github.com/clubware/server/internal/infrastructure/postgres"
	"github.com/clubware/server/pkg/helpers"
)

// seed creates the first administrator directly in the database, since
// the HTTP API has no way to grant permissions before an admin exists.
// It prints the bearer secret once; store it somewhere safe.
func main() {
	email := flag.String("email", "", "email address of the admin account")
	name := flag.String("name", "Admin", "display name")
	password := flag.String("password", "", "plain password (hashed before storing); random if empty")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)

	exists, err := users.Exists(ctx, *email)
	if err != nil {
		log.Fatalf("check existing user: %v", err)
	}
	if exists {
		log.Fatalf("user %s already exists", *email)
	}

	pwd := *password
	if pwd == "" {
		pwd = uuid.NewString()
		fmt.Printf("generated password: %s\n", pwd)
	}

	id := uuid.NewString()
	secret := helpers.Hash(uuid.NewString() + *email)
	u := &entity.User{
		ID:       id,
		Email:    *email,
		Password: helpers.Hash(pwd),
		Secret:   secret,
		Name:     *name,
		Image:    cfg.DefaultAvatar,
		Permissions: []entity.Permission{
			entity.PermissionAdmin,
			entity.PermissionCreateEvent,
			entity.PermissionEditEvent,
			entity.PermissionDeleteEvent,
			entity.PermissionDefault,
		},
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	fmt.Printf("created admin %s (%s)\n", *email, id)
	fmt.Printf("bearer secret: %s\n", secret)
}
