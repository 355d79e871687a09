package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/demanddesk/api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty user id and
// role prove the middleware ran; anything else is rejected with 401.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	email, _ := c.Get("email").(string)
	name, _ := c.Get("name").(string)
	return domain.Claims{UserID: userID, Email: email, Role: role, Name: name}, nil
}
