package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
	"github.com/werkbank/workshop-system/internal/pkg/metrics"
)

const tokenTypeBearer = "bearer"

// AuthService implements registration, login and admin bootstrap.
type AuthService struct {
	creds  ports.CredentialRepository
	orgs   ports.OrganizationRepository
	hasher *PasswordHasher
	tokens *TokenService
	log    zerolog.Logger
}

func NewAuthService(
	creds ports.CredentialRepository,
	orgs ports.OrganizationRepository,
	hasher *PasswordHasher,
	tokens *TokenService,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{creds: creds, orgs: orgs, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a login-capable employee and returns a token for it. When
// no organization is given a new one is created for the registrant.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.TokenResult, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return nil, domain.Validation("Email and name are required")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	role := domain.RoleMonteur
	if in.Role != "" {
		r, ok := domain.ParseRole(in.Role)
		if !ok {
			return nil, domain.ErrUnknownRole
		}
		role = r
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	emp, err := s.registerInOrg(ctx, in.OrgID, in.OrgName, &domain.Employee{
		Name:         name,
		Role:         role,
		Email:        &email,
		PasswordHash: &hash,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("employee_id", emp.ID).Str("org_id", emp.OrgID).Str("role", string(emp.Role)).Msg("employee registered")
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	return s.issue(emp)
}

// Login checks email and password. Unknown emails, wrong passwords and
// deactivated accounts all fail with the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "bad_credentials").Inc()
		return nil, domain.ErrIncorrectCredentials
	}

	emp, err := s.creds.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		metrics.AuthAttemptsTotal.WithLabelValues("login", "bad_credentials").Inc()
		return nil, domain.ErrIncorrectCredentials
	case err != nil:
		return nil, fmt.Errorf("login: %w", err)
	}

	if !emp.CanLogin() || !s.hasher.Verify(password, *emp.PasswordHash) {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "bad_credentials").Inc()
		return nil, domain.ErrIncorrectCredentials
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return s.issue(emp)
}

// BootstrapAdmin creates an Admin account, or promotes and reactivates the
// existing employee with the same email and resets their password.
func (s *AuthService) BootstrapAdmin(ctx context.Context, in ports.BootstrapAdminInput) (*domain.Employee, bool, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, false, domain.Validation("Email is required")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, false, domain.ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, false, fmt.Errorf("bootstrap admin: hash password: %w", err)
	}

	existing, err := s.creds.FindByEmail(ctx, email)
	switch {
	case err == nil:
		emp, err := s.creds.ResetCredentials(ctx, existing.ID, domain.RoleAdmin, hash)
		if err != nil {
			return nil, false, err
		}
		s.log.Info().Int64("employee_id", emp.ID).Msg("existing employee promoted to admin")
		return emp, false, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, false, fmt.Errorf("bootstrap admin: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Admin"
	}
	emp, err := s.registerInOrg(ctx, in.OrgID, in.OrgName, &domain.Employee{
		Name:         name,
		Role:         domain.RoleAdmin,
		Email:        &email,
		PasswordHash: &hash,
		IsActive:     true,
	})
	if err != nil {
		return nil, false, err
	}
	s.log.Info().Int64("employee_id", emp.ID).Str("org_id", emp.OrgID).Msg("admin created")
	return emp, true, nil
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.creds.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrEmailTaken
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("register: %w", err)
	}
}

// registerInOrg inserts emp into the existing organization orgID, or, when
// orgID is empty, into a new organization created in the same write.
func (s *AuthService) registerInOrg(ctx context.Context, orgID, orgName string, emp *domain.Employee) (*domain.Employee, error) {
	if orgID != "" {
		org, err := s.orgs.Get(ctx, orgID)
		if err != nil {
			return nil, err
		}
		emp.OrgID = org.ID
		return s.creds.Register(ctx, emp)
	}

	name := strings.TrimSpace(orgName)
	if name == "" {
		name = emp.Name + "'s workshop"
	}
	created, err := s.creds.RegisterWithOrganization(ctx, name, emp)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("org_id", created.OrgID).Msg("organization created")
	return created, nil
}

func (s *AuthService) issue(emp *domain.Employee) (*ports.TokenResult, error) {
	token, expires, err := s.tokens.Issue(emp, emp.OrgID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.TokenResult{AccessToken: token, TokenType: tokenTypeBearer, ExpiresAt: expires}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
