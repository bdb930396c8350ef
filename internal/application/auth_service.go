package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karanatwal4/todo-api/internal/domain/entity"
	"github.com/karanatwal4/todo-api/internal/domain/repository"
	"github.com/karanatwal4/todo-api/pkg/helpers"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// AuthService owns the credential and session token lifecycle: it derives
// password digests, issues signed tokens, verifies them on each request and
// revokes them on logout. No other component mutates the token list.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

// Register creates a user and issues its first session token. Email shape
// and password length are validated at the HTTP boundary.
func (s *AuthService) Register(ctx context.Context, email, password string) (*entity.User, string, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &entity.User{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
		Tokens:   []entity.UserToken{},
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", err
	}
	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies the credentials and issues a fresh token. Unknown email and
// wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Verify checks the token signature and expiry, then requires the exact
// token string to still be present in the user's stored token list, so
// revoked tokens fail even while their signature is valid.
func (s *AuthService) Verify(ctx context.Context, tokenStr string) (*entity.User, error) {
	claims, err := s.JWT.Parse(tokenStr)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	uid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	u, err := s.Users.GetByToken(ctx, uid, claims.Access, tokenStr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return u, nil
}

// Revoke removes the token from the user's token list. Revoking an
// already-absent token is not an error.
func (s *AuthService) Revoke(ctx context.Context, u *entity.User, tokenStr string) error {
	if err := s.Users.PullToken(ctx, u.ID, tokenStr); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (s *AuthService) issueToken(ctx context.Context, u *entity.User) (string, error) {
	token, err := s.JWT.Generate(u.ID.Hex())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("generate token failed")
		}
		return "", err
	}
	t := entity.UserToken{Access: helpers.AccessAuth, Token: token}
	if err := s.Users.PushToken(ctx, u.ID, t); err != nil {
		return "", err
	}
	u.Tokens = append(u.Tokens, t)
	return token, nil
}
