package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/demanddesk/api/internal/api/metrics"
	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/ports"
)

// DemandHandler handles the user-scoped demand routes.
type DemandHandler struct {
	service ports.DemandService
}

func NewDemandHandler(service ports.DemandService) *DemandHandler {
	return &DemandHandler{service: service}
}

// Create handles POST /api/demands.
//
// @Summary      Submit a new demand
// @Tags         demands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDemandRequest  true  "Demand fields"
// @Success      200   {object}  demandResponse
// @Failure      400   {object}  msgResponse
// @Router       /demands [post]
func (h *DemandHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createDemandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Missing required fields"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Missing required fields"})
	}

	demand, err := h.service.Create(c.Request().Context(), claims.UserID, ports.CreateDemandInput{
		Title:             req.Title,
		Category:          req.Category,
		Description:       req.Description,
		Budget:            req.Budget,
		Deadline:          req.Deadline,
		ContactPreference: req.ContactPreference,
		Files:             req.Files,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Missing required fields"})
		}
		return err
	}

	metrics.DemandsCreatedTotal.WithLabelValues(demand.Category).Inc()
	return c.JSON(http.StatusOK, demandResponse{Msg: "Demand created successfully", Demand: demand})
}

// List handles GET /api/demands: the caller's own demands, newest first.
//
// @Summary      List own demands
// @Tags         demands
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Demand
// @Router       /demands [get]
func (h *DemandHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	demands, err := h.service.ListForOwner(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	if demands == nil {
		demands = []*domain.Demand{}
	}

	return c.JSON(http.StatusOK, demands)
}

// Get handles GET /api/demands/:id. A demand owned by someone else answers
// 404, not 403, so the route does not leak record existence.
//
// @Summary      Get own demand by id
// @Tags         demands
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Demand id"
// @Success      200  {object}  domain.Demand
// @Failure      404  {object}  msgResponse
// @Router       /demands/{id} [get]
func (h *DemandHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	demand, err := h.service.Get(c.Request().Context(), claims.UserID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, demand)
}

// Update handles PUT /api/demands/:id, a partial update of own demand content.
//
// @Summary      Update own demand
// @Tags         demands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Demand id"
// @Param        body  body      updateDemandRequest  true  "Fields to change"
// @Success      200   {object}  demandResponse
// @Failure      404   {object}  msgResponse
// @Router       /demands/{id} [put]
func (h *DemandHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateDemandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Invalid payload"})
	}

	demand, err := h.service.Update(c.Request().Context(), claims.UserID, c.Param("id"), toUpdate(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, demandResponse{Msg: "Demand updated successfully", Demand: demand})
}

// Delete handles DELETE /api/demands/:id.
//
// @Summary      Delete own demand
// @Tags         demands
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Demand id"
// @Success      200  {object}  msgResponse
// @Failure      404  {object}  msgResponse
// @Router       /demands/{id} [delete]
func (h *DemandHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims.UserID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, msgResponse{Msg: "Demand deleted successfully"})
}
