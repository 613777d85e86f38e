package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

var tokenEpoch = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func tokenEmployee() *domain.Employee {
	email := "jan@garage.nl"
	return &domain.Employee{ID: 42, OrgID: "org-1", Role: domain.RoleBalie, Email: &email, IsActive: true}
}

func TestTokenService_IssueAndParse(t *testing.T) {
	clock := &fakeClock{t: tokenEpoch}
	svc := NewTokenService("secret", time.Hour, clock.now)

	tok, exp, err := svc.Issue(tokenEmployee(), "org-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if !exp.Equal(tokenEpoch.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", exp)
	}

	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Subject != "42" || claims.Email != "jan@garage.nl" || claims.Role != "Balie" || claims.OrgID != "org-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	clock := &fakeClock{t: tokenEpoch}
	svc := NewTokenService("secret", time.Hour, clock.now)

	tok, _, err := svc.Issue(tokenEmployee(), "")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	clock.t = tokenEpoch.Add(time.Hour - time.Second)
	if _, err := svc.Parse(tok); err != nil {
		t.Fatalf("token should be valid just before expiry: %v", err)
	}

	clock.t = tokenEpoch.Add(time.Hour + time.Second)
	if _, err := svc.Parse(tok); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_ExpiryBoundary_SubSecondClock(t *testing.T) {
	issuedAt := tokenEpoch.Add(700 * time.Millisecond)
	clock := &fakeClock{t: issuedAt}
	svc := NewTokenService("secret", time.Hour, clock.now)

	tok, exp, err := svc.Issue(tokenEmployee(), "")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if !exp.Equal(tokenEpoch.Add(time.Hour)) {
		t.Fatalf("expiry %v should be whole seconds, want %v", exp, tokenEpoch.Add(time.Hour))
	}

	clock.t = exp.Add(-300 * time.Millisecond)
	if _, err := svc.Parse(tok); err != nil {
		t.Fatalf("token should be valid before its reported expiry: %v", err)
	}

	clock.t = exp.Add(time.Millisecond)
	if _, err := svc.Parse(tok); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired after expiry, got %v", err)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	clock := &fakeClock{t: tokenEpoch}
	svc := NewTokenService("secret", 0, clock.now)
	_, exp, _ := svc.Issue(tokenEmployee(), "")
	if !exp.Equal(tokenEpoch.Add(60 * time.Minute)) {
		t.Fatalf("expected 60 minute default ttl, got %v", exp.Sub(tokenEpoch))
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret", time.Hour, nil)
	verifier := NewTokenService("rotated", time.Hour, nil)

	tok, _, _ := issuer.Issue(tokenEmployee(), "")
	if _, err := verifier.Parse(tok); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, nil)

	claims := jwt.MapClaims{"sub": "1", "email": "a@b.nl", "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Parse(tok); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for HS512, got %v", err)
	}

	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := svc.Parse(unsigned); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestTokenService_MissingPayloadFields(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, nil)

	for name, claims := range map[string]jwt.MapClaims{
		"no subject": {"email": "a@b.nl", "exp": time.Now().Add(time.Hour).Unix()},
		"no email":   {"sub": "1", "exp": time.Now().Add(time.Hour).Unix()},
	} {
		tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		_, err := svc.Parse(tok)
		if !errors.Is(err, domain.ErrInvalidPayload) {
			t.Fatalf("%s: expected ErrInvalidPayload, got %v", name, err)
		}
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, nil)
	if _, err := svc.Parse("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
