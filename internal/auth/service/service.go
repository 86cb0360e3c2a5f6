package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mirellenails/salon-backend/internal/apperror"
	"github.com/mirellenails/salon-backend/internal/auth"
	authdb "github.com/mirellenails/salon-backend/internal/auth/db"
	"github.com/mirellenails/salon-backend/internal/config"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is deliberately generic: the response never reveals
// whether the email exists or which check failed.
var ErrInvalidCredentials = apperror.NewAppError("invalid credentials")

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mockauth
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*auth.Admin, error)
	Create(ctx context.Context, email string, passwordHash []byte) (int, error)
}

type TokenManager interface {
	GenerateToken(email string) (string, error)
}

type PasswordManager interface {
	GenerateHashFromPassword(password []byte) ([]byte, error)
	CompareHashAndPassword(hashedPassword []byte, password []byte) error
}

type service struct {
	repository      Repository
	tokenManager    TokenManager
	passwordManager PasswordManager
	adminConfig     config.Admin
	logger          *zap.Logger
}

func NewService(
	repository Repository,
	tokenManager TokenManager,
	passwordManager PasswordManager,
	adminConfig config.Admin,
	logger *zap.Logger,
) *service {
	return &service{
		repository:      repository,
		tokenManager:    tokenManager,
		passwordManager: passwordManager,
		adminConfig:     adminConfig,
		logger:          logger,
	}
}

// EnsureAdmin provisions the admin record from the configured defaults when
// it does not exist yet.
func (s *service) EnsureAdmin(ctx context.Context) error {
	_, err := s.repository.GetByEmail(ctx, s.adminConfig.Email)
	if err == nil {
		return nil
	}

	if !errors.Is(err, authdb.ErrAdminNotFound) {
		return err
	}

	hash, err := s.passwordManager.GenerateHashFromPassword([]byte(s.adminConfig.Password))
	if err != nil {
		return err
	}

	if _, err := s.repository.Create(ctx, s.adminConfig.Email, hash); err != nil {
		return err
	}

	s.logger.Info("admin account provisioned", zap.String("email", s.adminConfig.Email))

	return nil
}

// Login succeeds only for the one configured admin email with the matching
// password, and returns a session token.
func (s *service) Login(ctx context.Context, email string, password string) (string, error) {
	if !strings.EqualFold(email, s.adminConfig.Email) {
		return "", ErrInvalidCredentials
	}

	admin, err := s.repository.GetByEmail(ctx, s.adminConfig.Email)
	if err != nil {
		if errors.Is(err, authdb.ErrAdminNotFound) {
			return "", ErrInvalidCredentials
		}

		s.logger.Error("unexpected error when fetching admin", zap.Error(err))

		return "", err
	}

	if err := s.passwordManager.CompareHashAndPassword(admin.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateToken(admin.Email)
	if err != nil {
		s.logger.Error("unexpected error when generating session token", zap.Error(err))

		return "", err
	}

	return token, nil
}
