package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/demanddesk/api/internal/api/metrics"
	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/ports"
)

// AuthHandler handles registration, login, and profile routes.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  msgResponse
// @Failure      400   {object}  msgResponse
// @Failure      500   {object}  msgResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Missing fields"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Missing fields"})
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Missing fields"})
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Email already exists"})
		}
		return err
	}

	return c.JSON(http.StatusOK, msgResponse{Msg: "Registration successful"})
}

// Login authenticates a user and returns a session token with the user snapshot.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  msgResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Email and password are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Email and password are required"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Not-found and bad-password both answer 400; the message text is part
		// of the wire contract the dashboard frontend matches on.
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "User not found"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Invalid password"})
		case errors.Is(err, domain.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Email and password are required"})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Msg:   "Login successful",
		Token: token,
		User:  toUserResponse(user),
	})
}

// Profile returns the authenticated user's account snapshot.
//
// @Summary      Get current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      404  {object}  msgResponse
// @Router       /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}
