package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pdf-chatbot-api/internal/domain"
	apperrors "pdf-chatbot-api/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users     domain.UserRepository
	tokens    domain.TokenIssuer
	logger    domain.Logger
	cost      int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates the registration/login service. cost is clamped to
// the range bcrypt accepts.
func NewAuthService(
	users domain.UserRepository,
	tokens domain.TokenIssuer,
	cost int,
	logger domain.Logger,
) *authService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger,
		cost:   cost,
	}
}

// Register creates a user with a bcrypt-hashed password and returns a session token
func (s *authService) Register(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("Username is required")
	}
	if password == "" {
		return nil, apperrors.NewValidationError("Password is required")
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error("Failed to check username", err, "username", username)
		return nil, apperrors.NewInternalError("Failed to register user", err)
	}
	if exists {
		return nil, apperrors.NewDuplicateUsernameError(domain.ErrDuplicateUsername)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to hash password", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, apperrors.NewDuplicateUsernameError(err)
		}
		s.logger.Error("Failed to create user", err, "username", username)
		return nil, apperrors.NewInternalError("Failed to register user", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "username", username)
	return s.result(user)
}

// Login checks the password. Unknown usernames and wrong passwords return the
// same error.
func (s *authService) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.compareDummy(password)
			return nil, apperrors.NewInvalidCredentialsError(domain.ErrInvalidCredentials)
		}
		s.logger.Error("Failed to load user", err, "username", username)
		return nil, apperrors.NewInternalError("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("Password mismatch", "username", username)
		return nil, apperrors.NewInvalidCredentialsError(domain.ErrInvalidCredentials)
	}

	return s.result(user)
}

// ValidateToken returns the user id carried by a session token
func (s *authService) ValidateToken(token string) (string, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		s.logger.Debug("Token rejected", "error", err)
		return "", err
	}
	return userID, nil
}

// compareDummy spends the same bcrypt work on unknown usernames as on real ones.
func (s *authService) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("pdf-chatbot-dummy-password"), s.cost)
		if err != nil {
			s.logger.Warn("Failed to compute dummy hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
	}
}

func (s *authService) result(user *domain.User) (*domain.AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to issue token", err)
	}
	return &domain.AuthResult{
		ID:       user.ID,
		Username: user.Username,
		Token:    token,
	}, nil
}
