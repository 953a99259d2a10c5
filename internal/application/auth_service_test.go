package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubware/server/config"
	"github.com/clubware/server/internal/domain/entity"
	"github.com/clubware/server/pkg/helpers"
	"github.com/clubware/server/pkg/mailer"
)

func testConfig() *config.Config {
	return &config.Config{
		ClubName:        "Computing Society",
		VerifyURL:       "http://localhost:3000/auth/verify",
		SignupTokenTTL:  24 * time.Hour,
		DefaultUserName: "Member",
		DefaultAvatar:   "/images/default-avatar.png",
		MailSendEnabled: true,
	}
}

func newAuthFixtures(users ...*entity.User) (*AuthService, *fakeTokenStore, *fakeQueue, *fakeUserRepo) {
	repo := newFakeUserRepo(users...)
	tokens := newFakeTokenStore()
	queue := &fakeQueue{}
	jwt := helpers.NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)
	svc := NewAuthService(repo, tokens, queue, jwt, testConfig(), testLogger())
	return svc, tokens, queue, repo
}

func TestRequestVerificationEnqueuesLink(t *testing.T) {
	svc, tokens, queue, _ := newAuthFixtures()

	err := svc.RequestVerification(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, tokens.issued)
	require.Len(t, queue.jobs, 1)

	job, ok := queue.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "new@example.com", job.To)

	link, ok := job.Data["VerifyLink"].(string)
	require.True(t, ok)

	seg := link[len("http://localhost:3000/auth/verify/"):]
	email, token, err := helpers.DecodeVerification(seg)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", email)

	valid, err := svc.VerifyToken(context.Background(), email, token)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestRequestVerificationRejectsKnownEmail(t *testing.T) {
	svc, tokens, queue, _ := newAuthFixtures(&entity.User{ID: "u1", Email: "taken@example.com"})

	err := svc.RequestVerification(context.Background(), "taken@example.com")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Zero(t, tokens.issued)
	assert.Empty(t, queue.jobs)
}

func TestVerifyTokenWrongToken(t *testing.T) {
	svc, tokens, _, _ := newAuthFixtures()
	_, err := tokens.Issue(context.Background(), "new@example.com")
	require.NoError(t, err)

	valid, err := svc.VerifyToken(context.Background(), "new@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, valid)

	valid, err = svc.VerifyToken(context.Background(), "other@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestCreateUserHappyPath(t *testing.T) {
	svc, tokens, _, repo := newAuthFixtures()
	token, err := tokens.Issue(context.Background(), "new@example.com")
	require.NoError(t, err)

	pwd := helpers.Hash("chosen password")
	u, err := svc.CreateUser(context.Background(), token, CreateUserInput{
		Email:    "new@example.com",
		Password: pwd,
		Name:     "Ada",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEmpty(t, u.Secret)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, []entity.Permission{entity.PermissionDefault}, u.Permissions)
	assert.Equal(t, "/images/default-avatar.png", u.Image)

	stored, err := repo.GetByEmailUnsecure(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, pwd, stored.Password)
}

func TestCreateUserDefaultsNameAndPassword(t *testing.T) {
	svc, tokens, _, repo := newAuthFixtures()
	token, err := tokens.Issue(context.Background(), "new@example.com")
	require.NoError(t, err)

	u, err := svc.CreateUser(context.Background(), token, CreateUserInput{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Member", u.Name)

	stored, err := repo.GetByEmailUnsecure(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Len(t, stored.Password, 64)
}

func TestCreateUserInvalidToken(t *testing.T) {
	svc, tokens, _, _ := newAuthFixtures()
	_, err := tokens.Issue(context.Background(), "new@example.com")
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), "bogus", CreateUserInput{Email: "new@example.com"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCreateUserReplayFails(t *testing.T) {
	svc, tokens, _, _ := newAuthFixtures()
	token, err := tokens.Issue(context.Background(), "new@example.com")
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), token, CreateUserInput{Email: "new@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), token, CreateUserInput{Email: "new@example.com"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin(t *testing.T) {
	digest := helpers.Hash("hunter2")
	svc, _, _, _ := newAuthFixtures(&entity.User{
		ID:       "u1",
		Email:    "member@example.com",
		Password: digest,
		Secret:   "s1",
	})

	u, pair, err := svc.Login(context.Background(), "member@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, _, err = svc.Login(context.Background(), "member@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login(context.Background(), "ghost@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefresh(t *testing.T) {
	svc, _, _, _ := newAuthFixtures(&entity.User{
		ID:       "u1",
		Email:    "member@example.com",
		Password: helpers.Hash("hunter2"),
		Secret:   "s1",
	})

	_, pair, err := svc.Login(context.Background(), "member@example.com", "hunter2")
	require.NoError(t, err)

	rotated, userID, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.NotEmpty(t, rotated.AccessToken)

	_, _, err = svc.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
