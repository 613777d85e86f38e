package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// DefaultTokenTTL is used when no positive ttl is configured.
const DefaultTokenTTL = 60 * time.Minute

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Org   string `json:"org,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and parses HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService. now may be nil to use the wall clock.
func NewTokenService(secret string, ttl time.Duration, now func() time.Time) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: now}
}

// Issue signs a token for emp. The org claim is only set when orgID is non-empty.
// Times are truncated to whole seconds, the resolution of the iat and exp
// claims, so the returned expiry matches the token.
func (s *TokenService) Issue(emp *domain.Employee, orgID string) (string, time.Time, error) {
	issued := s.now().Truncate(time.Second)
	expires := issued.Add(s.ttl).Truncate(time.Second)

	email := ""
	if emp.Email != nil {
		email = *emp.Email
	}

	claims := tokenClaims{
		Email: email,
		Role:  string(emp.Role),
		Org:   orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(emp.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse verifies the signature and expiry of raw and returns its claims.
// Failures are domain.ErrTokenExpired, domain.ErrInvalidToken or
// domain.ErrInvalidPayload.
func (s *TokenService) Parse(raw string) (*domain.TokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrTokenExpired
	case err != nil:
		return nil, domain.ErrInvalidToken
	}

	if claims.Subject == "" || claims.Email == "" {
		return nil, domain.ErrInvalidPayload
	}

	return &domain.TokenClaims{
		Subject: claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
		OrgID:   claims.Org,
	}, nil
}
