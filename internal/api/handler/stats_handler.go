package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/demanddesk/api/internal/core/ports"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// ForUser handles GET /api/statistics: counts scoped to the caller's demands.
//
// @Summary      Get own demand statistics
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserStats
// @Router       /statistics [get]
func (h *StatsHandler) ForUser(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	stats, err := h.service.ForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

// ForAdmin handles GET /api/admin/statistics: system-wide counts.
//
// @Summary      Get system-wide statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminStats
// @Failure      403  {object}  msgResponse
// @Router       /admin/statistics [get]
func (h *StatsHandler) ForAdmin(c echo.Context) error {
	stats, err := h.service.ForAdmin(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}
