package ports

import (
	"context"
	"time"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

// UserRepository defines persistence for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns users ordered by username. An empty role returns every user.
	List(ctx context.Context, role string) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	UpdateRole(ctx context.Context, id uint, role string) error
	TouchLogin(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
}

// TokenDenylist records revoked token ids until they expire.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
