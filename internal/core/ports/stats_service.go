package ports

import "context"

// UserStats is the per-user dashboard aggregate. Total always equals the sum
// of the four per-status counts.
type UserStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

// AdminStats is the system-wide dashboard aggregate.
type AdminStats struct {
	TotalDemands      int64 `json:"totalDemands"`
	TotalUsers        int64 `json:"totalUsers"`
	PendingDemands    int64 `json:"pendingDemands"`
	InProgressDemands int64 `json:"inProgressDemands"`
	CompletedDemands  int64 `json:"completedDemands"`
	CancelledDemands  int64 `json:"cancelledDemands"`
	RecentDemands     int64 `json:"recentDemands"`
}

// StatsService computes read-side aggregates. Results are recomputed per call;
// the admin view may be served from a short-lived cache with identical values.
type StatsService interface {
	ForUser(ctx context.Context, ownerID string) (*UserStats, error)
	ForAdmin(ctx context.Context) (*AdminStats, error)
}
