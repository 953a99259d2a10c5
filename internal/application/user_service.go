package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/clubware/server/internal/domain/entity"
	"github.com/clubware/server/internal/domain/repository"
)

// UserService covers member lookups and the admin-gated permission
// management of the dashboard.
type UserService struct {
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

func (s *UserService) Exists(ctx context.Context, email string) (bool, error) {
	exists, err := s.Users.Exists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return exists, nil
}

// GetByEmail returns the secure projection, never credentials.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return u, nil
}

// GetAllUsers is a public read: permissions and contact fields are
// visible, credentials are excluded by the repository projection.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return users, nil
}

// requireAdmin resolves the bearer secret and checks the ADMIN flag.
func (s *UserService) requireAdmin(ctx context.Context, auth string) (*entity.User, error) {
	caller, err := s.Users.GetBySecret(ctx, auth)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if !caller.HasPermission(entity.PermissionAdmin) {
		return nil, ErrForbidden
	}
	return caller, nil
}

// UpdateUserInput carries the admin edit: optional rename plus a
// wholesale replacement of the permission set.
type UpdateUserInput struct {
	Name        string
	Permissions []entity.Permission
}

// UpdateUser replaces the target's permission set (normalized to a
// well-formed set) and optionally the name. ADMIN only.
func (s *UserService) UpdateUser(ctx context.Context, auth, id string, in UpdateUserInput) (*entity.User, error) {
	caller, err := s.requireAdmin(ctx, auth)
	if err != nil {
		return nil, err
	}

	perms := entity.NormalizePermissions(in.Permissions)
	u, err := s.Users.UpdateByID(ctx, id, in.Name, perms)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	s.Logger.WithFields(logrus.Fields{"admin": caller.ID, "user": u.ID}).Info("user updated")
	return u, nil
}

// GrantPermission adds one permission to the target's set. The server
// owns the merge so a client bug cannot drop flags. ADMIN only.
func (s *UserService) GrantPermission(ctx context.Context, auth, id string, perm entity.Permission) (*entity.User, error) {
	if !entity.ValidPermission(perm) {
		return nil, fmt.Errorf("%w: unknown permission %q", ErrNotFound, perm)
	}
	caller, err := s.requireAdmin(ctx, auth)
	if err != nil {
		return nil, err
	}

	target, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	perms := entity.NormalizePermissions(append(target.Permissions, perm))
	u, err := s.Users.UpdateByID(ctx, id, "", perms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	s.Logger.WithFields(logrus.Fields{"admin": caller.ID, "user": u.ID, "perm": perm}).Info("permission granted")
	return u, nil
}

// RevokePermission removes one permission from the target's set. ADMIN only.
func (s *UserService) RevokePermission(ctx context.Context, auth, id string, perm entity.Permission) (*entity.User, error) {
	caller, err := s.requireAdmin(ctx, auth)
	if err != nil {
		return nil, err
	}

	target, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	perms := make([]entity.Permission, 0, len(target.Permissions))
	for _, p := range target.Permissions {
		if p != perm {
			perms = append(perms, p)
		}
	}
	u, err := s.Users.UpdateByID(ctx, id, "", perms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	s.Logger.WithFields(logrus.Fields{"admin": caller.ID, "user": u.ID, "perm": perm}).Info("permission revoked")
	return u, nil
}
