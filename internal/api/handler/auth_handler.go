package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/api/middleware"
	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

const resetPath = "/api/v1/auth/resetpassword/"

type AuthHandler struct {
	authService  ports.AuthService
	cookieTTL    time.Duration
	secureCookie bool
}

// NewAuthHandler builds the auth endpoints. cookieTTL should match the
// session token lifetime; secureCookie marks the cookie Secure.
func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, _, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusCreated, token)
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token)
}

// Logout clears the session cookie. Tokens are stateless, so a copied token
// stays valid until it expires.
//
// @Summary  Logout
// @Tags     auth
// @Produce  json
// @Success  200  {object}  dataResponse
// @Router   /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "none",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
	})
	return respond(c, http.StatusOK, struct{}{})
}

// Me returns the authenticated user.
//
// @Summary   Current user
// @Tags      auth
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  dataResponse
// @Failure   401  {object}  ErrorResponse
// @Router    /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Me(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// @Summary   Update name and email
// @Tags      auth
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      updateDetailsRequest  true  "New details"
// @Success   200   {object}  dataResponse
// @Router    /auth/updatedetails [put]
func (h *AuthHandler) UpdateDetails(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req updateDetailsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateDetails(c.Request().Context(), actor, req.Name, req.Email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// @Summary   Change password
// @Tags      auth
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      updatePasswordRequest  true  "Current and new password"
// @Success   200   {object}  tokenResponse
// @Failure   401   {object}  ErrorResponse
// @Router    /auth/updatepassword [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req updatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.UpdatePassword(c.Request().Context(), actor, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token)
}

// ForgotPassword mails a single-use reset link to the account's address.
//
// @Summary  Request a password reset
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      forgotPasswordRequest  true  "Account email"
// @Success  200   {object}  dataResponse
// @Failure  404   {object}  ErrorResponse
// @Failure  409   {object}  ErrorResponse
// @Failure  500   {object}  ErrorResponse
// @Router   /auth/forgotpassword [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resetURL := c.Scheme() + "://" + c.Request().Host + resetPath
	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email, resetURL); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Email sent")
}

// ResetPassword consumes a reset token and sets a new password.
//
// @Summary  Reset password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    resettoken  path      string                true  "Reset token from the email"
// @Param    body        body      resetPasswordRequest  true  "New password"
// @Success  200         {object}  tokenResponse
// @Failure  400         {object}  ErrorResponse
// @Router   /auth/resetpassword/{resettoken} [put]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.ResetPassword(c.Request().Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token)
}

func (h *AuthHandler) sendToken(c echo.Context, status int, token string) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(status, tokenResponse{Success: true, Token: token})
}
