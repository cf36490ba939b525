package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
)

// AuthConfig defines configuration for token issuance.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	PassphraseHash    string
	Issuer            string
}

// AuthService exchanges the planner passphrase for access tokens.
type AuthService struct {
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	clock     Clock
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(validate *validator.Validate, logger *zap.Logger, config AuthConfig, clock Clock) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if clock == nil {
		clock = time.Now
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 30 * 24 * time.Hour
	}
	return &AuthService{validator: validate, logger: logger, config: config, clock: clock}
}

// IssueToken checks the passphrase against the configured bcrypt hash. With no
// hash configured every request is rejected.
func (s *AuthService) IssueToken(req models.TokenRequest) (*models.TokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid token payload")
	}
	if strings.TrimSpace(s.config.PassphraseHash) == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "passphrase login is not configured")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.PassphraseHash), []byte(req.Passphrase)); err != nil {
		s.logger.Warn("rejected passphrase", zap.String("device", req.Device))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid passphrase")
	}

	issuedAt := s.clock().UTC()
	token, err := s.generateAccessToken(req.Device, issuedAt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithTimeFunc(s.clock))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if s.config.Issuer != "" && claims.Issuer != s.config.Issuer {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected token issuer")
	}

	return claims, nil
}

func (s *AuthService) generateAccessToken(device string, issuedAt time.Time) (string, error) {
	claims := &models.JWTClaims{
		Device: device,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   "planner",
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}
