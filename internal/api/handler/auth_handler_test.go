package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

func okToken() *ports.TokenResult {
	return &ports.TokenResult{AccessToken: "token123", TokenType: "bearer", ExpiresAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.TokenResult, error) {
			if in.Email != "els@garage.nl" || in.Name != "Els" || in.OrgName != "Garage Els" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return okToken(), nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/register",
		`{"email":"els@garage.nl","password":"longenough","name":"Els","org_name":"Garage Els"}`, nil)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token123" || resp["token_type"] != "bearer" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.TokenResult, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/register", `{"email":"a@b.nl","password":"longenough","name":"A"}`, nil)

	if err := handler.Register(c); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.TokenResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/register", "not-json", nil)
	if err := handler.Register(c); !isHTTPError(err, http.StatusBadRequest) {
		t.Fatalf("expected 400, got %v", err)
	}

	c, _ = newContext(http.MethodPost, "/auth/register", `{"email":"not-an-email","password":"x","name":"A"}`, nil)
	err := handler.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if detail, _ := domain.DetailOf(err); !strings.Contains(detail, "email must be a valid email") {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestAuthHandler_Login_JSON(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.TokenResult, error) {
			if email != "els@garage.nl" || password != "secret-pw" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return okToken(), nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/login", `{"username":"els@garage.nl","password":"secret-pw"}`, nil)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Form(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.TokenResult, error) {
			if email != "els@garage.nl" || password != "secret-pw" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return okToken(), nil
		},
	}
	handler := NewAuthHandler(stub)

	e := echo.New()
	e.Validator = NewValidator()
	form := url.Values{"username": {"els@garage.nl"}, "password": {"secret-pw"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	if err := handler.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"access_token":"token123"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_IncorrectCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.TokenResult, error) {
			return nil, domain.ErrIncorrectCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/login", `{"username":"els@garage.nl","password":"bad"}`, nil)

	if err := handler.Login(c); err != domain.ErrIncorrectCredentials {
		t.Fatalf("expected ErrIncorrectCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.TokenResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/login", `{"username":"els@garage.nl"}`, nil)
	if err := handler.Login(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := newContext(http.MethodGet, "/auth/me", "", balie)
	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := `{"user_id":2,"email":"balie@garage.nl","role":"Balie","org_id":"org-1"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}
}

func TestAuthHandler_Me_NoRole(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	user := &domain.AuthenticatedUser{SubjectID: 3, Email: "x@b.nl", OrgID: "org-1"}
	c, rec := newContext(http.MethodGet, "/auth/me", "", user)
	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"role":null`) {
		t.Fatalf("expected null role, got %s", rec.Body.String())
	}
}
