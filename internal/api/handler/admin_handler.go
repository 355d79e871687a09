package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/demanddesk/api/internal/api/metrics"
	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/ports"
)

// AdminHandler handles the admin-scoped demand and user routes. Role
// enforcement happens in the RBAC middleware; handlers assume an admin caller.
type AdminHandler struct {
	demands ports.DemandService
	users   ports.UserRepository
}

func NewAdminHandler(demands ports.DemandService, users ports.UserRepository) *AdminHandler {
	return &AdminHandler{demands: demands, users: users}
}

// ListDemands handles GET /api/admin/demands with filtering and pagination.
//
// @Summary      List all demands
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Exact status filter ('all' for none)"
// @Param        search  query     string  false  "Substring search over title/description"
// @Param        page    query     int     false  "1-based page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  adminListResponse
// @Failure      403     {object}  msgResponse
// @Router       /admin/demands [get]
func (h *AdminHandler) ListDemands(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.demands.ListAll(c.Request().Context(), ports.ListDemandsFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	views := make([]adminDemandView, 0, len(result.Items))
	for _, item := range result.Items {
		views = append(views, toAdminView(item))
	}

	return c.JSON(http.StatusOK, adminListResponse{
		Demands:     views,
		Total:       result.Total,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

// GetDemand handles GET /api/admin/demands/:id with the owner expanded.
//
// @Summary      Get any demand by id
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Demand id"
// @Success      200  {object}  adminDemandView
// @Failure      403  {object}  msgResponse
// @Failure      404  {object}  msgResponse
// @Router       /admin/demands/{id} [get]
func (h *AdminHandler) GetDemand(c echo.Context) error {
	item, err := h.demands.AdminGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAdminView(*item))
}

// UpdateStatus handles PATCH /api/admin/demands/:id/status. Unknown status
// values and illegal transitions both answer 400 and leave the record unchanged.
//
// @Summary      Update a demand's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Demand id"
// @Param        body  body      updateStatusRequest  true  "New status and optional response"
// @Success      200   {object}  adminDemandResponse
// @Failure      400   {object}  msgResponse
// @Failure      403   {object}  msgResponse
// @Failure      404   {object}  msgResponse
// @Router       /admin/demands/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Invalid status"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Invalid status"})
	}

	item, err := h.demands.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, req.AdminResponse)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Invalid status"})
		}
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(item.Demand.Status)).Inc()
	return c.JSON(http.StatusOK, adminDemandResponse{Msg: "Status updated successfully", Demand: toAdminView(*item)})
}

// ListUsers handles GET /api/admin/users: registered accounts, newest first,
// without password hashes.
//
// @Summary      List registered users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  msgResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListByRole(c.Request().Context(), domain.RoleUser)
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}

	return c.JSON(http.StatusOK, resp)
}
