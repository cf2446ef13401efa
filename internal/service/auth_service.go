package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cjex-salaj/site-api/internal/models"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
)

// AuthServiceConfig defines configuration for the dashboard sign-in flow.
type AuthServiceConfig struct {
	PasswordHash string
	TokenSecret  string
	SessionTTL   time.Duration
	MaxAttempts  int
	Window       time.Duration
}

// AuthService authenticates the single dashboard admin and manages
// session tokens. Failed attempts are throttled through the injected
// AttemptStore.
type AuthService struct {
	attempts  AttemptStore
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthServiceConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(attempts AttemptStore, validate *validator.Validate, logger *zap.Logger, config AuthServiceConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 7 * 24 * time.Hour
	}
	return &AuthService{attempts: attempts, validator: validate, logger: logger, config: config}
}

// SessionTTL exposes the configured session lifetime for cookie setup.
func (s *AuthService) SessionTTL() time.Duration { return s.config.SessionTTL }

// Login verifies the dashboard password and issues a session token.
// The client's attempt window is checked before the password: once the
// limit is reached, every attempt yields 429 until the window expires,
// even with the correct password. A success clears the window.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, clientID string) (string, *models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	if clientID == "" {
		clientID = "unknown"
	}

	count, err := s.attempts.Count(ctx, clientID)
	if err != nil {
		s.logger.Warn("failed to read login attempts", zap.Error(err))
	}
	if count >= int64(s.config.MaxAttempts) {
		s.logger.Warn("login locked out", zap.String("client", clientID), zap.Int64("attempts", count))
		return "", nil, appErrors.ErrTooManyRequests
	}

	if !s.passwordMatches(req.Password) {
		if _, err := s.attempts.Incr(ctx, clientID, s.config.Window); err != nil {
			s.logger.Warn("failed to record login attempt", zap.Error(err))
		}
		return "", nil, appErrors.ErrInvalidCredentials
	}

	if err := s.attempts.Reset(ctx, clientID); err != nil {
		s.logger.Warn("failed to clear login attempts", zap.Error(err))
	}

	sessionID := uuid.NewString()
	token, err := s.issueToken(sessionID)
	if err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}

	s.logger.Info("dashboard login", zap.String("session_id", sessionID), zap.String("client", clientID))

	return token, &models.LoginResponse{
		Success:   true,
		ExpiresIn: int64(s.config.SessionTTL.Seconds()),
		SessionID: sessionID,
	}, nil
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(token string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired session")
	}
	return claims, nil
}

func (s *AuthService) passwordMatches(password string) bool {
	hash := s.config.PasswordHash
	if hash == "" {
		return false
	}
	if strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	// Plaintext fallback for local development configs.
	return hash == password
}

func (s *AuthService) issueToken(sessionID string) (string, error) {
	now := time.Now().UTC()
	claims := &models.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "site-api",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.SessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.TokenSecret))
}
