package service

import (
	"errors"
	"time"

	"github.com/forgo/community/api/pkg/jwt"
)

// DefaultSessionDuration is the fixed horizon of a session credential
const DefaultSessionDuration = 30 * 24 * time.Hour

// TokenService issues and parses session credentials
type TokenService struct {
	jwtService *jwt.Service
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	JWTService *jwt.Service
}

// NewTokenService creates a new token service
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	return &TokenService{
		jwtService: cfg.JWTService,
	}
}

// Issue returns a signed credential binding userID until the session horizon
func (s *TokenService) Issue(userID string) (string, error) {
	return s.jwtService.Sign(jwt.Claims{UserID: userID})
}

// Parse validates a credential and returns the account id it binds.
// Expired credentials yield ErrTokenExpired; anything else malformed,
// tampered or foreign yields ErrUnauthorized.
func (s *TokenService) Parse(token string) (string, error) {
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrUnauthorized
	}
	return claims.UserID, nil
}

// Expiration returns the credential lifetime
func (s *TokenService) Expiration() time.Duration {
	return s.jwtService.GetExpiration()
}
