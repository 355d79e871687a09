package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/ports"
)

const recentWindow = 7 * 24 * time.Hour

// StatsInvalidator drops the cached admin aggregate. Write paths call it so a
// cached value never hides a completed write.
type StatsInvalidator interface {
	InvalidateAdminStats(ctx context.Context)
}

// StatsCache is the optional read-side cache for the admin aggregate.
// A nil StatsCache means every call recomputes from the store.
type StatsCache interface {
	GetAdminStats(ctx context.Context) (*ports.AdminStats, bool)
	SetAdminStats(ctx context.Context, stats *ports.AdminStats)
	StatsInvalidator
}

// StatsService computes dashboard aggregates from the demand and user stores.
type StatsService struct {
	demands ports.DemandRepository
	users   ports.UserRepository
	cache   StatsCache
	logger  zerolog.Logger
}

func NewStatsService(demands ports.DemandRepository, users ports.UserRepository, cache StatsCache, logger zerolog.Logger) *StatsService {
	return &StatsService{demands: demands, users: users, cache: cache, logger: logger}
}

// ForUser returns the caller's demand counts by status.
func (s *StatsService) ForUser(ctx context.Context, ownerID string) (*ports.UserStats, error) {
	counts, err := s.demands.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &ports.UserStats{
		Total:      counts.Total,
		Pending:    counts.Pending,
		InProgress: counts.InProgress,
		Completed:  counts.Completed,
		Cancelled:  counts.Cancelled,
	}, nil
}

// ForAdmin returns system-wide counts: demands by status, registered users,
// and demands created within the last seven days.
func (s *StatsService) ForAdmin(ctx context.Context) (*ports.AdminStats, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetAdminStats(ctx); ok {
			return cached, nil
		}
	}

	counts, err := s.demands.CountByStatus(ctx, "")
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.users.CountByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	recent, err := s.demands.CountCreatedSince(ctx, time.Now().UTC().Add(-recentWindow))
	if err != nil {
		return nil, err
	}

	stats := &ports.AdminStats{
		TotalDemands:      counts.Total,
		TotalUsers:        totalUsers,
		PendingDemands:    counts.Pending,
		InProgressDemands: counts.InProgress,
		CompletedDemands:  counts.Completed,
		CancelledDemands:  counts.Cancelled,
		RecentDemands:     recent,
	}

	if s.cache != nil {
		s.cache.SetAdminStats(ctx, stats)
	}
	return stats, nil
}
