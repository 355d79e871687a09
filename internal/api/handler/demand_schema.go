package handler

import (
	"time"

	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/ports"
)

type createDemandRequest struct {
	Title             string     `json:"title"             validate:"required"`
	Category          string     `json:"category"          validate:"required"`
	Description       string     `json:"description"       validate:"required"`
	Budget            string     `json:"budget"`
	Deadline          *time.Time `json:"deadline"`
	ContactPreference string     `json:"contactPreference"`
	Files             []string   `json:"files"`
}

// updateDemandRequest carries the owner-editable fields. Absent fields stay
// unchanged; owner, status, and timestamps are not accepted here.
type updateDemandRequest struct {
	Title             *string    `json:"title"`
	Category          *string    `json:"category"`
	Description       *string    `json:"description"`
	Budget            *string    `json:"budget"`
	Deadline          *time.Time `json:"deadline"`
	ContactPreference *string    `json:"contactPreference"`
	Files             []string   `json:"files"`
}

type updateStatusRequest struct {
	Status        string `json:"status" validate:"required"`
	AdminResponse string `json:"adminResponse"`
}

type demandResponse struct {
	Msg    string         `json:"msg"`
	Demand *domain.Demand `json:"demand"`
}

// adminDemandView is a demand with its owner identity expanded, as served on
// the admin routes.
type adminDemandView struct {
	*domain.Demand
	User *domain.OwnerInfo `json:"user,omitempty"`
}

type adminDemandResponse struct {
	Msg    string          `json:"msg"`
	Demand adminDemandView `json:"demand"`
}

type adminListResponse struct {
	Demands     []adminDemandView `json:"demands"`
	Total       int64             `json:"total"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

func toAdminView(item ports.DemandWithOwner) adminDemandView {
	return adminDemandView{Demand: item.Demand, User: item.Owner}
}

func toUpdate(req updateDemandRequest) ports.DemandUpdate {
	return ports.DemandUpdate{
		Title:             req.Title,
		Category:          req.Category,
		Description:       req.Description,
		Budget:            req.Budget,
		Deadline:          req.Deadline,
		ContactPreference: req.ContactPreference,
		Files:             req.Files,
	}
}
