// Package auth manages underwriter accounts and JWT sessions.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/interfaces"
	"github.com/cmai/strata/internal/models"
)

// Service implements AuthService
type Service struct {
	storage interfaces.StorageManager
	config  *common.AuthConfig
	logger  *common.Logger
	now     func() time.Time
}

var _ interfaces.AuthService = (*Service)(nil)

// NewService creates a new auth service
func NewService(storage interfaces.StorageManager, config *common.AuthConfig, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
}

// Authenticate verifies credentials and returns a signed JWT plus the user.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.storage.InternalStore().GetUser(ctx, username)
	if err != nil {
		// Same error for unknown user and bad password.
		return "", nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token, err := s.signJWT(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("User authenticated")
	return token, user, nil
}

// ValidateToken parses a JWT and returns the user it names. The user must
// still exist; tokens for deleted accounts are rejected.
func (s *Service) ValidateToken(tokenString string) (*models.User, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	user, err := s.storage.InternalStore().GetUser(context.Background(), sub)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token")
	}
	return user, nil
}

// CreateUser creates an account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if role == "" {
		role = models.RoleUnderwriter
	}
	if role != models.RoleUnderwriter && role != models.RoleAdmin {
		return nil, fmt.Errorf("invalid role '%s'", role)
	}

	if _, err := s.storage.InternalStore().GetUser(ctx, username); err == nil {
		return nil, fmt.Errorf("user '%s' already exists", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.storage.InternalStore().SaveUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", username).Str("role", role).Msg("User created")
	return user, nil
}

// EnsureBootstrapUser creates the configured bootstrap admin account when no
// users exist yet, so a fresh install is reachable.
func (s *Service) EnsureBootstrapUser(ctx context.Context) error {
	if s.config.BootstrapUser == "" || s.config.BootstrapPassword == "" {
		return nil
	}
	users, err := s.storage.InternalStore().ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	if _, err := s.CreateUser(ctx, s.config.BootstrapUser, s.config.BootstrapPassword, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to create bootstrap user: %w", err)
	}
	s.logger.Warn().Str("username", s.config.BootstrapUser).Msg("Bootstrap admin user created; change the password")
	return nil
}

// TokenExpiry returns the configured token lifetime.
func (s *Service) TokenExpiry() time.Duration {
	return s.config.GetTokenExpiry()
}

// signJWT creates a signed HMAC-SHA256 JWT for the given user.
func (s *Service) signJWT(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"name": user.Name,
		"role": user.Role,
		"iss":  "strata-server",
		"iat":  now.Unix(),
		"exp":  now.Add(s.config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
