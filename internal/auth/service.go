// internal/auth/service.go
package auth

import (
	"context"
	"fmt"
	"time"

	"jobswipe-api/internal/common/errors"
	"jobswipe-api/internal/common/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config holds the token-signing settings.
type Config struct {
	Secret          string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Service signs and verifies JWTs. Credential checks are delegated to the
// injected verifier; the service itself is stateless.
type Service struct {
	config   Config
	verifier CredentialVerifier
	logger   logger.Logger
}

func NewService(config Config, verifier CredentialVerifier, log logger.Logger) *Service {
	return &Service{
		config:   config,
		verifier: verifier,
		logger:   log.WithFields(map[string]interface{}{"component": "auth"}),
	}
}

// Login verifies the credentials and issues a fresh token pair.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	if err := s.verifier.Verify(ctx, creds); err != nil {
		return nil, err
	}

	pair, err := s.GenerateTokens(creds.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", map[string]interface{}{"email": creds.Email})
	return pair, nil
}

// Refresh verifies a refresh token and reissues a pair for the same identity.
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.ParseToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return s.GenerateTokens(claims.Email)
}

// GenerateTokens signs an HS256 access/refresh pair for the given identity.
func (s *Service) GenerateTokens(email string) (*TokenPair, error) {
	accessToken, err := s.sign(email, TokenTypeAccess, s.config.AccessTokenTTL)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("sign access token: %w", err))
	}

	refreshToken, err := s.sign(email, TokenTypeRefresh, s.config.RefreshTokenTTL)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("sign refresh token: %w", err))
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.config.AccessTokenTTL.Seconds()),
	}, nil
}

// ParseToken verifies signature, expiry and token type.
func (s *Service) ParseToken(tokenString, expectedType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, errors.NewInvalidTokenError(err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.NewInvalidTokenError("token claims invalid")
	}
	if claims.TokenType != expectedType {
		return nil, errors.NewInvalidTokenError(
			fmt.Sprintf("expected %s token, got %s", expectedType, claims.TokenType))
	}

	return claims, nil
}

func (s *Service) sign(email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}
