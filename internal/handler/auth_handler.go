package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskhub/internal/service"
)

// TokenCookieName is the session cookie carrying the JWT.
const TokenCookieName = "token"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	tokenTTL     time.Duration
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, tokenTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenTTL:     tokenTTL,
		cookieSecure: cookieSecure,
	}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
}

// LoginRequest represents a login request; identifier is email or username.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// SignupResponse returns the created identifiers.
type SignupResponse struct {
	UserID     uint `json:"userId"`
	EmployeeID uint `json:"employeeId"`
}

// Signup godoc
// @Summary Register a user with an employee profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, employee, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Contact:  req.Contact,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		UserID:     user.ID,
		EmployeeID: employee.ID,
	})
}

// Login godoc
// @Summary Login with email or username, sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.SetCookie(h.sessionCookie(token, time.Now().Add(h.tokenTTL)))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "logged in successfully",
		"user":    user,
	})
}

// Logout godoc
// @Summary Logout, revokes the session token and clears the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		// best effort: an already-invalid token still gets its cookie cleared
		_ = h.authService.Logout(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(h.sessionCookie("", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// Verify godoc
// @Summary Verify the session token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":    claims.UserID,
		"email": claims.Email,
	})
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
