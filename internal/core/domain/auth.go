package domain

import (
	"context"
	"strings"
)

// Role is the staff role carried in tokens and on employee records.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleBalie   Role = "Balie"
	RoleMonteur Role = "Monteur"
)

// ParseRole matches s case-insensitively against the known roles.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "balie":
		return RoleBalie, true
	case "monteur":
		return RoleMonteur, true
	}
	return "", false
}

// TokenClaims is the decoded, signature-checked content of a bearer token.
type TokenClaims struct {
	Subject string
	Email   string
	Role    string
	OrgID   string
}

// AuthenticatedUser is the request-scoped identity built by the token verifier.
// Role and OrgID come from the token and the request, not from the store,
// so a role change only takes effect once a new token is issued.
type AuthenticatedUser struct {
	SubjectID int64
	Email     string
	Role      Role // empty when the token carries none
	OrgID     string
}

// RequireAdmin passes the user through iff their role is Admin.
func RequireAdmin(u *AuthenticatedUser) (*AuthenticatedUser, error) {
	if u == nil || u.Role != RoleAdmin {
		return nil, ErrAdminsOnly
	}
	return u, nil
}

// Scope is the tenant predicate applied to every repository call.
type Scope struct {
	OrgID string
}

type ctxKey struct{}

// WithUser attaches the authenticated user to ctx.
func WithUser(ctx context.Context, u *AuthenticatedUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the user attached by WithUser.
func UserFromContext(ctx context.Context) (*AuthenticatedUser, bool) {
	u, ok := ctx.Value(ctxKey{}).(*AuthenticatedUser)
	return u, ok && u != nil
}

// ScopeFromContext derives the tenant scope of the current request. It fails
// closed: no user or no organization means no access.
func ScopeFromContext(ctx context.Context) (Scope, error) {
	u, ok := UserFromContext(ctx)
	if !ok || u.OrgID == "" {
		return Scope{}, ErrNoOrgScope
	}
	return Scope{OrgID: u.OrgID}, nil
}
