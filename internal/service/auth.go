package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger.EnterMethod("authService.Login", "email", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.ExitMethodWithError("authService.Login", err, "email", email)
			return "", nil, err
		}
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "email", email)
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "email", email)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "userID", user.ID)
		return "", nil, err
	}

	logger.ExitMethod("authService.Login", "userID", user.ID)
	return token, user, nil
}
