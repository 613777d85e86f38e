package ports

import (
	"context"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// CredentialRepository is the credential store. Email addresses are unique
// across all organizations, so lookups here are not tenant scoped.
type CredentialRepository interface {
	// FindByEmail returns a domain.ErrNotFound-kind error when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	// Register inserts a login-capable employee. Duplicate emails yield
	// domain.ErrEmailTaken.
	Register(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	// RegisterWithOrganization creates an organization named orgName and
	// inserts e into it in one atomic write; on any failure neither exists.
	RegisterWithOrganization(ctx context.Context, orgName string, e *domain.Employee) (*domain.Employee, error)
	// ResetCredentials sets role, password hash and reactivates the record.
	ResetCredentials(ctx context.Context, id int64, role domain.Role, passwordHash string) (*domain.Employee, error)
}

// OrganizationRepository reads tenants. Organizations are created together
// with their first employee through CredentialRepository.
type OrganizationRepository interface {
	Get(ctx context.Context, id string) (*domain.Organization, error)
}
