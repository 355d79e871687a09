package ports

import (
	"context"

	"github.com/demanddesk/api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListByRole returns all users with the given role, newest first.
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
	// CountByRole counts users with the given role.
	CountByRole(ctx context.Context, role string) (int64, error)
}
