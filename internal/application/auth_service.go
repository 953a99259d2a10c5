package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/clubware/server/config"
	"github.com/clubware/server/internal/domain/entity"
	"github.com/clubware/server/internal/domain/repository"
	"github.com/clubware/server/pkg/helpers"
	"github.com/clubware/server/pkg/mailer"
	tpl "github.com/clubware/server/pkg/mailer/templates"
)

// AuthService owns the signup verification flow and credential sign-in.
type AuthService struct {
	Users  repository.UserRepository
	Tokens TokenStore
	Queue  EmailQueue
	JWT    *helpers.JWTManager
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, tokens TokenStore, queue EmailQueue, jwt *helpers.JWTManager, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Queue: queue, JWT: jwt, Cfg: cfg, Logger: logger}
}

// RequestVerification starts the account-creation flow for email: it
// refuses known addresses, issues a token, and hands the verification
// link off to the email pipeline. Only the handoff result surfaces.
func (s *AuthService) RequestVerification(ctx context.Context, email string) error {
	exists, err := s.Users.Exists(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if exists {
		return ErrConflict
	}

	token, err := s.Tokens.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}

	link := s.Cfg.VerifyURL + "/" + helpers.EncodeVerification(email, token)
	if !s.Cfg.MailSendEnabled || s.Queue == nil {
		s.Logger.WithField("email", email).Info("mail sending disabled, skipping verification email")
		return nil
	}
	job := mailer.EmailJob{
		To:       email,
		Template: tpl.VerifySignup,
		Data: map[string]any{
			"ClubName":   s.Cfg.ClubName,
			"VerifyLink": link,
			"ExpiresIn":  s.Cfg.SignupTokenTTL.String(),
		},
	}
	if err := s.Queue.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("failed to enqueue verification email")
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return nil
}

// VerifyToken reports whether token is the live token for email.
func (s *AuthService) VerifyToken(ctx context.Context, email, token string) (bool, error) {
	valid, err := s.Tokens.Validate(ctx, email, token)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return valid, nil
}

// CreateUserInput is the payload submitted from the verification page.
// Password is already a hex SHA-256 digest; length and confirmation
// equality were checked client-side before hashing.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

// CreateUser validates the token once more (replay defense after the
// form renders), materializes the user record, and consumes the token
// so it can never be used again.
func (s *AuthService) CreateUser(ctx context.Context, token string, in CreateUserInput) (*entity.User, error) {
	valid, err := s.Tokens.Validate(ctx, in.Email, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if !valid {
		return nil, ErrInvalidToken
	}

	password := in.Password
	if password == "" {
		// A random unguessable digest keeps credential sign-in closed
		// until the member sets a password.
		password = helpers.Hash(uuid.NewString())
	}
	name := in.Name
	if name == "" {
		name = s.Cfg.DefaultUserName
	}

	u := &entity.User{
		ID:          uuid.NewString(),
		Email:       in.Email,
		Password:    password,
		Secret:      helpers.Hash(uuid.NewString() + in.Email),
		Name:        name,
		Image:       s.Cfg.DefaultAvatar,
		Permissions: []entity.Permission{entity.PermissionDefault},
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	if err := s.Tokens.Consume(ctx, in.Email); err != nil {
		// The account exists; a lingering token is only a replay risk
		// against the unique-email constraint, so log and move on.
		s.Logger.WithError(err).WithField("email", in.Email).Warn("failed to consume signup token")
	}
	return u, nil
}

// TokenPair is the session cookie pair issued on sign-in.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Login validates an email/password pair. The stored digest is
// compared in constant time against Hash(password).
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmailUnsecure(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, ErrUnauthorized
		}
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	digest := helpers.Hash(password)
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(digest)) != 1 {
		return nil, TokenPair{}, ErrUnauthorized
	}

	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return u, TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

// GetProfile returns the caller's own secure projection.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return u, nil
}

// Refresh rotates the cookie pair for a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrUnauthorized
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, "", ErrUnauthorized
	}
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		return TokenPair{}, "", fmt.Errorf("%w: %v", ErrDependency, err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, "", fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, u.ID, nil
}
