package ports

import (
	"context"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

// RequestMeta describes where a request came from, for audit entries.
type RequestMeta struct {
	Path      string
	IPAddress string
	UserAgent string
}

type AuthService interface {
	Login(ctx context.Context, username, password string, meta RequestMeta) (string, *domain.User, error)
	Logout(ctx context.Context, session domain.Session, meta RequestMeta) error
	// ParseToken validates a bearer token and returns its session, rejecting revoked tokens.
	ParseToken(ctx context.Context, token string) (*domain.Session, error)
}

// CreateUserInput carries the fields of a new account.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	FullName string
	Role     string
}

type UserService interface {
	Current(ctx context.Context, session domain.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, session domain.Session, update domain.ProfileUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, session domain.Session, current, next string) error
	List(ctx context.Context, role string) ([]domain.User, error)
	Create(ctx context.Context, actor domain.Session, in CreateUserInput) (*domain.User, error)
	ChangeRole(ctx context.Context, actor domain.Session, id uint, role string) error
	Delete(ctx context.Context, actor domain.Session, id uint) error
}
