package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubware/server/internal/domain/entity"
)

func newUserFixtures() (*UserService, *fakeUserRepo) {
	admin := &entity.User{
		ID:          "admin1",
		Email:       "admin@example.com",
		Secret:      "admin-secret",
		Name:        "Admin",
		Permissions: []entity.Permission{entity.PermissionAdmin, entity.PermissionDefault},
	}
	member := &entity.User{
		ID:          "member1",
		Email:       "member@example.com",
		Secret:      "member-secret",
		Name:        "Member",
		Permissions: []entity.Permission{entity.PermissionDefault},
	}
	repo := newFakeUserRepo(admin, member)
	return NewUserService(repo, testLogger()), repo
}

func TestExistsAndGetByEmail(t *testing.T) {
	svc, _ := newUserFixtures()

	exists, err := svc.Exists(context.Background(), "member@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	u, err := svc.GetByEmail(context.Background(), "member@example.com")
	require.NoError(t, err)
	assert.Equal(t, "member1", u.ID)
	assert.Empty(t, u.Password)
	assert.Empty(t, u.Secret)

	_, err = svc.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllUsersExcludesCredentials(t *testing.T) {
	svc, _ := newUserFixtures()

	users, err := svc.GetAllUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
		assert.Empty(t, u.Secret)
	}
}

func TestUpdateUserRequiresAdmin(t *testing.T) {
	svc, _ := newUserFixtures()
	in := UpdateUserInput{Permissions: []entity.Permission{entity.PermissionDefault}}

	_, err := svc.UpdateUser(context.Background(), "member-secret", "member1", in)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateUser(context.Background(), "no-such-secret", "member1", in)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateUserNormalizesPermissions(t *testing.T) {
	svc, _ := newUserFixtures()

	u, err := svc.UpdateUser(context.Background(), "admin-secret", "member1", UpdateUserInput{
		Name: "Renamed",
		Permissions: []entity.Permission{
			entity.PermissionDefault,
			"BOGUS",
			entity.PermissionCreateEvent,
			entity.PermissionDefault,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", u.Name)
	assert.Equal(t, []entity.Permission{entity.PermissionDefault, entity.PermissionCreateEvent}, u.Permissions)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _ := newUserFixtures()

	_, err := svc.UpdateUser(context.Background(), "admin-secret", "ghost", UpdateUserInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGrantPermissionMergesServerSide(t *testing.T) {
	svc, _ := newUserFixtures()

	u, err := svc.GrantPermission(context.Background(), "admin-secret", "member1", entity.PermissionCreateEvent)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]entity.Permission{entity.PermissionDefault, entity.PermissionCreateEvent},
		u.Permissions)

	// granting again is idempotent
	u, err = svc.GrantPermission(context.Background(), "admin-secret", "member1", entity.PermissionCreateEvent)
	require.NoError(t, err)
	assert.Len(t, u.Permissions, 2)
}

func TestGrantPermissionRejectsUnknownFlag(t *testing.T) {
	svc, _ := newUserFixtures()

	_, err := svc.GrantPermission(context.Background(), "admin-secret", "member1", "SUPERUSER")
	assert.Error(t, err)
}

func TestRevokePermissionKeepsOthers(t *testing.T) {
	svc, _ := newUserFixtures()

	_, err := svc.GrantPermission(context.Background(), "admin-secret", "member1", entity.PermissionCreateEvent)
	require.NoError(t, err)

	u, err := svc.RevokePermission(context.Background(), "admin-secret", "member1", entity.PermissionDefault)
	require.NoError(t, err)
	assert.Equal(t, []entity.Permission{entity.PermissionCreateEvent}, u.Permissions)

	// revoking an absent flag is a no-op
	u, err = svc.RevokePermission(context.Background(), "admin-secret", "member1", entity.PermissionDeleteEvent)
	require.NoError(t, err)
	assert.Equal(t, []entity.Permission{entity.PermissionCreateEvent}, u.Permissions)
}

func TestGrantRevokeRequireAdmin(t *testing.T) {
	svc, _ := newUserFixtures()

	_, err := svc.GrantPermission(context.Background(), "member-secret", "member1", entity.PermissionCreateEvent)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.RevokePermission(context.Background(), "member-secret", "member1", entity.PermissionDefault)
	assert.ErrorIs(t, err, ErrForbidden)
}
