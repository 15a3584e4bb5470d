package auth

import (
	"context"
	"crypto/subtle"

	autherrors "emp-portal/internal/auth/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (LoginResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

// Login compares the submitted credentials verbatim against the stored
// record. No hashing, lockout, or token issuance; a success response is
// all the session state the caller gets.
func (s *service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	cred, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("login lookup failed", zap.String("username", username))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) != 1 {
		s.logger.Warn("login password mismatch", zap.String("username", username))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	fullName := cred.FullName
	if fullName == "" {
		fullName = cred.Username
	}

	s.logger.Info("login success", zap.String("username", username))

	return LoginResponse{
		Success:  true,
		Username: username,
		FullName: fullName,
	}, nil
}
