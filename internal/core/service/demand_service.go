package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// EventSink receives demand lifecycle events for asynchronous processing
// (audit trail, notifications). Enqueue must not block the request path.
type EventSink interface {
	Enqueue(event ports.DemandEvent)
}

// noopSink drops events; used when no dispatcher is wired (tests).
type noopSink struct{}

func (noopSink) Enqueue(ports.DemandEvent) {}

// DemandService implements the demand lifecycle use cases.
type DemandService struct {
	repo   ports.DemandRepository
	users  ports.UserRepository
	events EventSink
	stats  StatsInvalidator
	logger zerolog.Logger
}

// NewDemandService builds the service. events and stats may be nil: without a
// sink lifecycle events are dropped, without an invalidator writes leave no
// cache to refresh.
func NewDemandService(repo ports.DemandRepository, users ports.UserRepository, events EventSink, stats StatsInvalidator, logger zerolog.Logger) *DemandService {
	if events == nil {
		events = noopSink{}
	}
	return &DemandService{repo: repo, users: users, events: events, stats: stats, logger: logger}
}

// invalidateStats drops the cached admin aggregate after a successful write.
func (s *DemandService) invalidateStats(ctx context.Context) {
	if s.stats != nil {
		s.stats.InvalidateAdminStats(ctx)
	}
}

// Create validates the required fields and persists a new pending demand
// owned by the caller.
func (s *DemandService) Create(ctx context.Context, ownerID string, input ports.CreateDemandInput) (*domain.Demand, error) {
	if input.Title == "" || input.Category == "" || input.Description == "" {
		return nil, domain.ErrMissingFields
	}

	contactPreference := input.ContactPreference
	if contactPreference == "" {
		contactPreference = "email"
	}
	files := input.Files
	if files == nil {
		files = []string{}
	}

	now := time.Now().UTC()
	demand := &domain.Demand{
		UserID:            ownerID,
		Title:             input.Title,
		Category:          input.Category,
		Description:       input.Description,
		Budget:            input.Budget,
		Deadline:          input.Deadline,
		ContactPreference: contactPreference,
		Status:            domain.StatusPending,
		Files:             files,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.repo.Create(ctx, demand)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to create demand")
		return nil, err
	}

	s.logger.Info().Str("demand_id", created.ID).Str("user_id", ownerID).Str("category", created.Category).Msg("demand created")
	s.invalidateStats(ctx)

	s.events.Enqueue(ports.DemandEvent{
		Kind:      "demand_created",
		DemandID:  created.ID,
		OwnerID:   ownerID,
		Title:     created.Title,
		ToStatus:  created.Status,
		Timestamp: now,
	})

	return created, nil
}

// ListForOwner returns the caller's demands, newest first.
func (s *DemandService) ListForOwner(ctx context.Context, ownerID string) ([]*domain.Demand, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns the demand only when the caller owns it. A foreign or missing
// demand is reported as not found, never as forbidden.
func (s *DemandService) Get(ctx context.Context, ownerID, id string) (*domain.Demand, error) {
	return s.repo.FindByID(ctx, id, ownerID)
}

// Update applies a partial update to the caller's own demand. Owner, status,
// and creation time are not writable through this path.
func (s *DemandService) Update(ctx context.Context, ownerID, id string, update ports.DemandUpdate) (*domain.Demand, error) {
	return s.repo.Update(ctx, id, ownerID, update)
}

// Delete removes the caller's own demand.
func (s *DemandService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info().Str("demand_id", id).Str("user_id", ownerID).Msg("demand deleted")
	s.invalidateStats(ctx)
	return nil
}

// ListAll returns a filtered, paginated page of all demands with owner
// identities expanded.
func (s *DemandService) ListAll(ctx context.Context, filter ports.ListDemandsFilter) (*ports.ListDemandsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.Status == "all" {
		filter.Status = ""
	}

	demands, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ports.DemandWithOwner, 0, len(demands))
	for _, d := range demands {
		items = append(items, ports.DemandWithOwner{Demand: d, Owner: s.ownerInfo(ctx, d.UserID)})
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListDemandsResult{
		Items:       items,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
	}, nil
}

// AdminGet returns any demand by id with its owner identity expanded.
func (s *DemandService) AdminGet(ctx context.Context, id string) (*ports.DemandWithOwner, error) {
	demand, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	return &ports.DemandWithOwner{Demand: demand, Owner: s.ownerInfo(ctx, demand.UserID)}, nil
}

// UpdateStatus applies an admin status change through the transition table.
// An unknown status value or an illegal transition leaves the record untouched.
func (s *DemandService) UpdateStatus(ctx context.Context, id string, status string, adminResponse string) (*ports.DemandWithOwner, error) {
	newStatus := domain.DemandStatus(status)
	if !newStatus.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	current, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(newStatus) {
		s.logger.Warn().
			Str("demand_id", id).
			Str("from", string(current.Status)).
			Str("to", string(newStatus)).
			Msg("rejected status transition")
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, newStatus, adminResponse)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("demand_id", id).
		Str("from", string(current.Status)).
		Str("to", string(newStatus)).
		Msg("demand status updated")
	s.invalidateStats(ctx)

	owner := s.ownerInfo(ctx, updated.UserID)
	event := ports.DemandEvent{
		Kind:       "status_changed",
		DemandID:   id,
		OwnerID:    updated.UserID,
		Title:      updated.Title,
		FromStatus: current.Status,
		ToStatus:   newStatus,
		Note:       adminResponse,
		Timestamp:  updated.UpdatedAt,
	}
	if owner != nil {
		event.OwnerEmail = owner.Email
	}
	s.events.Enqueue(event)

	return &ports.DemandWithOwner{Demand: updated, Owner: owner}, nil
}

// ownerInfo resolves the owner snapshot for admin views. A dangling owner
// reference (account removed out-of-band) yields nil rather than an error.
func (s *DemandService) ownerInfo(ctx context.Context, userID string) *domain.OwnerInfo {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("owner lookup failed")
		return nil
	}
	return &domain.OwnerInfo{ID: user.ID, Name: user.Name, Email: user.Email, Phone: user.Phone}
}
