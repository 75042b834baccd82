package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidKey       = errors.New("invalid key")
)

// Claims represents the session claims carried by a bearer token
type Claims struct {
	gojwt.RegisteredClaims

	// Custom claims
	UserID string `json:"user_id"`
}

// ExpiresAtTime returns the expiry as a time.Time, zero if unset
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Service signs and validates HS256 tokens
type Service struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// Config holds JWT service configuration
type Config struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
	// Now overrides the clock used for issuing and validating. Defaults to time.Now.
	Now func() time.Time
}

// NewService creates a new JWT service
func NewService(cfg Config) (*Service, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("%w: secret is empty", ErrInvalidKey)
	}
	if cfg.Expiration <= 0 {
		return nil, fmt.Errorf("%w: expiration must be positive", ErrInvalidKey)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: cfg.Expiration,
		now:        now,
	}, nil
}

// Sign creates a signed JWT from claims. Issuer, subject, issued-at and
// expiry are filled in when not already set.
func (s *Service) Sign(claims Claims) (string, error) {
	if claims.UserID == "" {
		return "", fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	now := s.now()
	if claims.Issuer == "" {
		claims.Issuer = s.issuer
	}
	if claims.Subject == "" {
		claims.Subject = claims.UserID
	}
	if claims.IssuedAt == nil {
		claims.IssuedAt = gojwt.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = gojwt.NewNumericDate(now.Add(s.expiration))
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and validates a JWT, returning its claims
func (s *Service) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, func(t *gojwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, gojwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetExpiration returns the token expiration duration
func (s *Service) GetExpiration() time.Duration {
	return s.expiration
}

// NewTestService creates a JWT service with the given secret and clock (for testing only)
func NewTestService(secret, issuer string, expiration time.Duration, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: expiration,
		now:        now,
	}
}
