package ports

import (
	"context"
	"time"

	"github.com/demanddesk/api/internal/core/domain"
)

// CreateDemandInput carries all data needed to create a new demand.
type CreateDemandInput struct {
	Title             string
	Category          string
	Description       string
	Budget            string
	Deadline          *time.Time
	ContactPreference string
	Files             []string
}

// DemandWithOwner pairs a demand with its expanded owner identity for admin views.
type DemandWithOwner struct {
	Demand *domain.Demand
	Owner  *domain.OwnerInfo
}

// ListDemandsResult is returned by the admin listing.
type ListDemandsResult struct {
	Items       []DemandWithOwner
	Total       int64
	TotalPages  int
	CurrentPage int
}

// DemandService defines the demand lifecycle use cases. Owner-scoped
// operations take the caller's user id and never expose records the caller
// does not own; misses surface as domain.ErrDemandNotFound.
type DemandService interface {
	Create(ctx context.Context, ownerID string, input CreateDemandInput) (*domain.Demand, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*domain.Demand, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Demand, error)
	Update(ctx context.Context, ownerID, id string, update DemandUpdate) (*domain.Demand, error)
	Delete(ctx context.Context, ownerID, id string) error

	// Admin-scoped operations; role enforcement happens at the router.
	ListAll(ctx context.Context, filter ListDemandsFilter) (*ListDemandsResult, error)
	AdminGet(ctx context.Context, id string) (*DemandWithOwner, error)
	UpdateStatus(ctx context.Context, id string, status string, adminResponse string) (*DemandWithOwner, error)
}
