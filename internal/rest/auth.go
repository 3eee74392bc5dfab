package rest

import (
	"context"
	"net/http"
	"time"

	"dinesmart/business/auth"
	"dinesmart/domain"
	"dinesmart/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (domain.User, error)
	Login(ctx context.Context, email, password string) (auth.LoginResult, error)
	Logout(ctx context.Context, userID uint, token string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

type AuthHandler struct {
	authService AuthService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=CUSTOMER SELLER"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate registration", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.authService.Register(ctx, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		logger.Error("Failed to register user", err)
		return writeError(c, err)
	}

	message := "Customer registered successfully"
	if user.Role == domain.RoleSeller {
		message = "Seller registered, pending admin approval"
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": message,
		"user":    user,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   result.Token,
		"role":    result.User.Role,
		"name":    result.User.Name,
		"id":      result.User.ID,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	token, ok := c.Get("token").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authService.Logout(ctx, userID, token); err != nil {
		logger.Error("Failed to logout user", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

// RequestReset always answers neutrally so account existence cannot be probed.
func (h *AuthHandler) RequestReset(c echo.Context) error {
	var req RequestResetRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	devToken, err := h.authService.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		logger.Error("Failed to create reset token", err)
		return writeError(c, err)
	}

	body := map[string]interface{}{
		"message": "If the account exists, a reset link has been sent.",
	}
	if devToken != "" {
		body["reset_token"] = devToken
	}

	return c.JSON(http.StatusOK, body)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authService.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Password reset successful",
	})
}
