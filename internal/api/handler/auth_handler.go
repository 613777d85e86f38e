package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func toTokenResponse(r *ports.TokenResult) tokenResponse {
	return tokenResponse{AccessToken: r.AccessToken, TokenType: r.TokenType, ExpiresAt: r.ExpiresAt}
}

// Register creates a login-capable employee and returns a token.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
		OrgID:    req.OrgID,
		OrgName:  req.OrgName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTokenResponse(res))
}

// Login exchanges credentials for a token. The body may be a form or JSON.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials (username is the email)"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTokenResponse(res))
}

// Me returns the identity of the caller.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string  true  "Organization id"
// @Success      200       {object}  meResponse
// @Failure      401       {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := domain.UserFromContext(c.Request().Context())
	if !ok {
		return domain.ErrMissingToken
	}

	resp := meResponse{UserID: user.SubjectID, Email: user.Email, OrgID: user.OrgID}
	if user.Role != "" {
		role := string(user.Role)
		resp.Role = &role
	}
	return c.JSON(http.StatusOK, resp)
}
