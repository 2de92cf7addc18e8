// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"ratereview/internal/delivery/http/response"
	"ratereview/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication-related handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register begins a role-scoped registration. The account is only created
// once the emailed confirmation link is followed.
func (h *AuthHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.BeginRegistration(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, output, "Confirmation email sent")
}

// Callback consumes a confirmation token from the emailed link and creates
// the account. With redirect=true the browser is sent to the role dashboard
// instead of receiving JSON.
func (h *AuthHandler) Callback(c echo.Context) error {
	token := c.QueryParam("token")
	redirect := c.QueryParam("redirect") == "true"
	if token == "" {
		if redirect {
			return c.Redirect(http.StatusSeeOther, "/")
		}

		return response.BadRequest(c, "INVALID_INPUT", "Confirmation token is missing")
	}

	output, err := h.uc.CompleteRegistration(c.Request().Context(), &usecase.CompleteRegistrationInput{Token: token})
	if err != nil {
		// A browser following the emailed link lands back at the entry page.
		if redirect {
			h.logger.Warn("Registration confirmation failed", "error", err)

			return c.Redirect(http.StatusSeeOther, "/")
		}

		return errors.WithStack(err)
	}

	if redirect {
		return c.Redirect(http.StatusSeeOther, output.DashboardPath)
	}

	return response.Success(c, http.StatusCreated, output, "Registration completed successfully")
}

// Login handles the role-scoped login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// RefreshToken handles the token refresh request.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var input *usecase.RefreshTokenInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Token refreshed successfully")
}

// Logout handles the logout request.
func (h *AuthHandler) Logout(c echo.Context) error {
	var input *usecase.LogoutInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid logout input")
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.uc.Logout(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// ChangePassword replaces the authenticated account's password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	accountID, ok := c.Get("accountID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Account identity missing from request context")
	}

	var input *usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.uc.ChangePassword(c.Request().Context(), accountID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password updated successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
