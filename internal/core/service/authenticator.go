package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
	"github.com/werkbank/workshop-system/internal/pkg/metrics"
)

// OrgSource selects where the request's organization comes from.
type OrgSource string

const (
	// OrgFromHeader trusts the X-Org-Id header verbatim.
	OrgFromHeader OrgSource = "header"
	// OrgFromToken requires the header to match the token's org claim.
	OrgFromToken OrgSource = "token"
)

// ParseOrgSource accepts "header" or "token".
func ParseOrgSource(s string) (OrgSource, error) {
	switch OrgSource(strings.ToLower(strings.TrimSpace(s))) {
	case OrgFromHeader, "":
		return OrgFromHeader, nil
	case OrgFromToken:
		return OrgFromToken, nil
	}
	return "", fmt.Errorf("unknown org source %q", s)
}

type authenticator struct {
	tokens    *TokenService
	creds     ports.CredentialRepository
	orgSource OrgSource
	log       zerolog.Logger
}

// NewAuthenticator returns the token verifier used by the auth middleware.
func NewAuthenticator(tokens *TokenService, creds ports.CredentialRepository, orgSource OrgSource, log zerolog.Logger) ports.Authenticator {
	return &authenticator{tokens: tokens, creds: creds, orgSource: orgSource, log: log}
}

// Authenticate runs the verification steps in order and stops at the first
// failure: token present, signature and expiry, payload, credential lookup,
// organization.
func (a *authenticator) Authenticate(ctx context.Context, token, orgHeader string) (*domain.AuthenticatedUser, error) {
	user, err := a.authenticate(ctx, token, orgHeader)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("verify", verifyFailure(err)).Inc()
		return nil, err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("verify", "success").Inc()
	return user, nil
}

func (a *authenticator) authenticate(ctx context.Context, token, orgHeader string) (*domain.AuthenticatedUser, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	claims, err := a.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidPayload
	}

	emp, err := a.creds.FindByEmail(ctx, claims.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, domain.ErrUserNotFoundOrInactive
	case err != nil:
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if emp.ID != subjectID || !emp.IsActive {
		return nil, domain.ErrUserNotFoundOrInactive
	}

	orgID := strings.TrimSpace(orgHeader)
	if orgID == "" {
		return nil, domain.ErrMissingOrg
	}
	if a.orgSource == OrgFromToken && orgID != claims.OrgID {
		a.log.Warn().Int64("subject_id", subjectID).Str("org_header", orgID).Msg("organization header does not match token")
		return nil, domain.ErrOrgMismatch
	}

	role, _ := domain.ParseRole(claims.Role)
	return &domain.AuthenticatedUser{
		SubjectID: subjectID,
		Email:     claims.Email,
		Role:      role,
		OrgID:     orgID,
	}, nil
}

func verifyFailure(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrUserNotFoundOrInactive):
		return "inactive"
	case errors.Is(err, domain.ErrForbidden):
		return "org_mismatch"
	case errors.Is(err, domain.ErrUnauthorized):
		return "invalid"
	}
	return "error"
}
