package ports

import (
	"context"
	"time"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string // empty defaults to Monteur
	OrgID    string // empty creates a new organization
	OrgName  string
}

// BootstrapAdminInput carries the create-admin command arguments.
type BootstrapAdminInput struct {
	Email    string
	Name     string
	Password string
	OrgID    string
	OrgName  string
}

// TokenResult is the response to a successful register or login.
type TokenResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// AuthService defines account use cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*TokenResult, error)
	Login(ctx context.Context, email, password string) (*TokenResult, error)
	// BootstrapAdmin creates an Admin or promotes the existing employee with
	// that email. created reports which happened.
	BootstrapAdmin(ctx context.Context, in BootstrapAdminInput) (emp *domain.Employee, created bool, err error)
}

// Authenticator turns a bearer token and organization header into the
// request identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token, orgHeader string) (*domain.AuthenticatedUser, error)
}
