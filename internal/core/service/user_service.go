package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

const minPasswordLength = 8

// UserService covers profile, password and user administration.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Current(ctx context.Context, session domain.Session) (*domain.User, error) {
	return s.repo.FindByID(ctx, session.UserID)
}

func (s *UserService) UpdateProfile(ctx context.Context, session domain.Session, update domain.ProfileUpdate) (*domain.User, error) {
	if update.Empty() {
		return nil, fmt.Errorf("%w: no profile fields provided", domain.ErrInvalidInput)
	}
	user, err := s.repo.UpdateProfile(ctx, session.UserID, update)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", session.Username).Msg("profile updated")
	return user, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, session domain.Session, current, next string) error {
	if len(next) < minPasswordLength {
		return domain.ErrWeakPassword
	}

	user, err := s.repo.FindByID(ctx, session.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.log.Info().Str("username", session.Username).Msg("password changed")
	return nil
}

func (s *UserService) List(ctx context.Context, role string) ([]domain.User, error) {
	if role != "" && !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	return s.repo.List(ctx, role)
}

// Create adds an account. Only super users may create other super users.
func (s *UserService) Create(ctx context.Context, actor domain.Session, in ports.CreateUserInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	if in.Role == domain.RoleSuperUser && actor.Role != domain.RoleSuperUser {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role).Str("created_by", actor.Username).Msg("user created")
	return user, nil
}

func (s *UserService) ChangeRole(ctx context.Context, actor domain.Session, id uint, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	if role == domain.RoleSuperUser && actor.Role != domain.RoleSuperUser {
		return domain.ErrUnauthorized
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleSuperUser && actor.Role != domain.RoleSuperUser {
		return domain.ErrUnauthorized
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	s.log.Info().Str("username", target.Username).Str("role", role).Str("changed_by", actor.Username).Msg("role changed")
	return nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Session, id uint) error {
	if id == actor.UserID {
		return domain.ErrSelfDelete
	}
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleSuperUser && actor.Role != domain.RoleSuperUser {
		return domain.ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Str("username", target.Username).Str("deleted_by", actor.Username).Msg("user deleted")
	return nil
}

// HashPassword hashes a plaintext password with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
