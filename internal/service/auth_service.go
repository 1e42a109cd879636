package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/config"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	minSecretKeyLength = 32
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrWeakSecretKey   = fmt.Errorf("jwt secret key must be at least %d bytes long", minSecretKeyLength)
)

// AuthService issues and validates the session tokens that stand in for the
// external login subsystem.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error)
}

type authServiceImpl struct {
	secretKey []byte
	now       func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(jwtCfg config.JWTConfig) (AuthService, error) {
	if len(jwtCfg.SecretKey) < minSecretKeyLength {
		return nil, ErrWeakSecretKey
	}
	return &authServiceImpl{
		secretKey: []byte(jwtCfg.SecretKey),
		now:       time.Now,
	}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := s.now()
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		} else {
			appLogger.Warn("JWT validation failed",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		if claims.UserID == "" {
			return nil, fmt.Errorf("%w: missing user id", ErrInvalidJWTToken)
		}
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}
