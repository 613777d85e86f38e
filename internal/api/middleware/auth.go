package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

const (
	// HeaderOrgID carries the organization every authenticated call acts on.
	HeaderOrgID = "X-Org-Id"

	// UserKey is the echo context key holding the *domain.AuthenticatedUser.
	UserKey = "user"
)

// Auth verifies the bearer token and the organization header, then attaches
// the authenticated user to both the echo context and the request context.
func Auth(authenticator ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			user, err := authenticator.Authenticate(req.Context(), bearerToken(req.Header.Get(echo.HeaderAuthorization)), req.Header.Get(HeaderOrgID))
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			c.SetRequest(req.WithContext(domain.WithUser(req.Context(), user)))
			return next(c)
		}
	}
}

// bearerToken returns the credentials of a "Bearer <token>" header, or "" when
// the header is absent or uses another scheme.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
