package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"spotbook/internal/auth"
	"spotbook/internal/service"
)

// AuthHandler handles session endpoints.
type AuthHandler struct {
	authService service.AuthService
	tokenTTL    time.Duration
	production  bool
}

// NewAuthHandler creates a new auth handler. tokenTTL is the cookie
// lifetime and should match the token expiry.
func NewAuthHandler(authService service.AuthService, tokenTTL time.Duration, production bool) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL, production: production}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Credential string `json:"credential" validate:"required" msg:"Please provide a valid email or username"`
	Password   string `json:"password" validate:"required" msg:"Please provide a password"`
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,min=3" msg:"Please provide a valid email with at least 3 characters."`
	Username  string `json:"username" validate:"required,min=4" msg:"Please provide a username with at least 4 characters"`
	FirstName string `json:"firstName" validate:"required" msg:"Please provide a valid first name."`
	LastName  string `json:"lastName" validate:"required" msg:"Please provide a valid last name."`
	Password  string `json:"password" validate:"required,min=6" msg:"Password must be 6 characters or more"`
}

// Check keeps usernames distinguishable from emails at login.
func (r SignupRequest) Check(v *validator.Validate) map[string]string {
	if r.Username != "" && v.Var(r.Username, "email") == nil {
		return map[string]string{"username": "Username cannot be an email."}
	}
	return nil
}

// Login godoc
// @Summary Log in with username or email
// @Tags session
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Credential, req.Password)
	if err != nil {
		return err
	}

	auth.SetTokenCookie(c, session.Token, h.tokenTTL, h.production)
	return c.JSON(http.StatusOK, UserResponse{User: &session.User})
}

// Signup godoc
// @Summary Create an account and log in
// @Tags session
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Account data"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	auth.SetTokenCookie(c, session.Token, h.tokenTTL, h.production)
	return c.JSON(http.StatusOK, UserResponse{User: &session.User})
}

// Logout godoc
// @Summary Log out
// @Tags session
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /users [delete]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), auth.SessionClaims(c)); err != nil {
		return err
	}
	auth.ClearTokenCookie(c, h.production)
	return c.JSON(http.StatusOK, MessageResponse{Message: "success"})
}

// Current godoc
// @Summary Current session user
// @Tags session
// @Produce json
// @Success 200 {object} UserResponse
// @Router /users [get]
func (h *AuthHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, UserResponse{User: auth.Identity(c)})
}
