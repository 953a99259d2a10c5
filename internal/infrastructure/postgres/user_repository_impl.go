package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubware/server/internal/domain/entity"
	"github.com/clubware/server/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func permsToStrings(perms []entity.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

func stringsToPerms(ss []string) []entity.Permission {
	out := make([]entity.Permission, len(ss))
	for i, s := range ss {
		out[i] = entity.Permission(s)
	}
	return out
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password, secret, name, image, permissions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, u.ID, u.Email, u.Password, u.Secret, u.Name, u.Image, permsToStrings(u.Permissions))

	return row.Scan(&u.CreatedAt, &u.UpdatedAt)
}

// GetByID returns the secure projection: password and secret are never read.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, image, permissions, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
	return scanSecure(row)
}

// GetByEmail returns the secure projection: password and secret are never read.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, image, permissions, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanSecure(row)
}

// GetByEmailUnsecure includes the password digest and bearer secret.
// For internal authentication checks only.
func (r *UserRepository) GetByEmailUnsecure(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password, secret, name, image, permissions, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUnsecure(row)
}

// GetBySecret resolves a bearer secret to its owner, including the
// credential fields. For internal authentication checks only.
func (r *UserRepository) GetBySecret(ctx context.Context, secret string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password, secret, name, image, permissions, created_at, updated_at
		FROM users
		WHERE secret = $1
	`, secret)
	return scanUnsecure(row)
}

func (r *UserRepository) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, image, permissions, created_at, updated_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		u := &entity.User{}
		var perms []string
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Image, &perms, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Permissions = stringsToPerms(perms)
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateByID replaces the permission set wholesale and optionally the
// name (empty name keeps the stored one). Returns the secure projection.
func (r *UserRepository) UpdateByID(ctx context.Context, id string, name string, perms []entity.Permission) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE(NULLIF($2, ''), name),
		    permissions = $3,
		    updated_at = $4
		WHERE id = $1
		RETURNING id, email, name, image, permissions, created_at, updated_at
	`, id, name, permsToStrings(perms), time.Now())
	return scanSecure(row)
}

func scanSecure(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var perms []string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Image, &perms, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.Permissions = stringsToPerms(perms)
	return u, nil
}

func scanUnsecure(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var perms []string
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Secret, &u.Name, &u.Image, &perms, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.Permissions = stringsToPerms(perms)
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
