package ports

import (
	"context"
	"time"

	"github.com/demanddesk/api/internal/core/domain"
)

// ListDemandsFilter carries all query parameters for the admin listing.
type ListDemandsFilter struct {
	Status string // optional: exact status match; empty or "all" = no filter
	Search string // optional: case-insensitive substring over title/description
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by the service)
}

// DemandUpdate holds the owner-editable content fields for a partial update.
// Nil pointers mean "leave unchanged". Owner, status, and creation time are
// not reachable through this path.
type DemandUpdate struct {
	Title             *string
	Category          *string
	Description       *string
	Budget            *string
	Deadline          *time.Time
	ContactPreference *string
	Files             []string
}

// StatusCounts is the per-status breakdown used by the statistics endpoints.
type StatusCounts struct {
	Total      int64
	Pending    int64
	InProgress int64
	Completed  int64
	Cancelled  int64
}

// DemandRepository defines persistence operations for demands.
// When ownerID is non-empty on a read or write, the operation is additionally
// scoped to that owner; a miss is reported as domain.ErrDemandNotFound.
type DemandRepository interface {
	Create(ctx context.Context, d *domain.Demand) (*domain.Demand, error)
	FindByID(ctx context.Context, id string, ownerID string) (*domain.Demand, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Demand, error)
	// List returns a page of demands matching filter, newest first, and the total count.
	List(ctx context.Context, filter ListDemandsFilter) ([]*domain.Demand, int64, error)
	Update(ctx context.Context, id string, ownerID string, update DemandUpdate) (*domain.Demand, error)
	// UpdateStatus sets the new status, the optional admin response, and appends
	// a history entry in a single document update.
	UpdateStatus(ctx context.Context, id string, status domain.DemandStatus, adminResponse string) (*domain.Demand, error)
	Delete(ctx context.Context, id string, ownerID string) error
	// CountByStatus aggregates demand counts, scoped to ownerID when non-empty.
	CountByStatus(ctx context.Context, ownerID string) (StatusCounts, error)
	// CountCreatedSince counts demands created at or after the given instant.
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// AuditRepository persists demand lifecycle events to the audit collection.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *DemandEvent) error
}

// DemandEvent is a lifecycle event emitted by the demand service and consumed
// by the notification dispatcher.
type DemandEvent struct {
	Kind       string // "demand_created" or "status_changed"
	DemandID   string
	OwnerID    string
	OwnerEmail string
	Title      string
	FromStatus domain.DemandStatus
	ToStatus   domain.DemandStatus
	Note       string
	Timestamp  time.Time
}
