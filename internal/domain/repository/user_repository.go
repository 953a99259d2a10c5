package repository

import (
	"context"

	"github.com/clubware/server/internal/domain/entity"
)

// UserRepository defines the user-table operations the services need.
// "Secure" reads never project the password digest or bearer secret;
// GetByEmailUnsecure and GetBySecret are reserved for internal
// authentication checks.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailUnsecure(ctx context.Context, email string) (*entity.User, error)
	GetBySecret(ctx context.Context, secret string) (*entity.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]*entity.User, error)
	UpdateByID(ctx context.Context, id string, name string, perms []entity.Permission) (*entity.User, error)
}
