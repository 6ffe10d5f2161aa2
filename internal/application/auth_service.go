package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/recipehub/recipehub/internal/domain/entity"
	repo "github.com/recipehub/recipehub/internal/domain/repository"
	"github.com/recipehub/recipehub/pkg/helpers"
	"github.com/recipehub/recipehub/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
)

// AuthService handles registration, login, and profile reads. The RabbitMQ
// publisher is optional; when nil the welcome email is skipped.
type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Pub: pub, Logger: logger}
}

type AuthToken struct {
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.Pub != nil {
		job := mailer.EmailJob{To: u.Email, Template: "welcome", Data: map[string]any{"Email": u.Email}}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
		}
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, AuthToken, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, AuthToken{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, AuthToken{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		}
		return nil, AuthToken{}, err
	}
	return u, AuthToken{Token: token, ExpiresAt: exp}, nil
}

// Profile resolves the verified identity back to a user record. The token may
// outlive the user; callers map ErrUserNotFound to 404.
func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
