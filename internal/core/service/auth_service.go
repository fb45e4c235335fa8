package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgmaturity/assessment-api/internal/api/metrics"
	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

// tokenClaims is the JWT payload issued at login.
type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements login, logout and token verification.
type AuthService struct {
	users     ports.UserRepository
	denylist  ports.TokenDenylist
	audit     ports.AuditRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	denylist ports.TokenDenylist,
	audit ports.AuditRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		denylist:  denylist,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Login verifies the credentials and issues a token. Both outcomes are audited.
func (s *AuthService) Login(ctx context.Context, username, password string, meta ports.RequestMeta) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordLogin(ctx, domain.EventLoginFailed, username, "unknown_user", meta)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordLogin(ctx, domain.EventLoginFailed, username, "bad_password", meta)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	now := s.now().UTC()
	if err := s.users.TouchLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to stamp last login")
	} else {
		user.LastLoginAt = &now
	}

	s.recordLogin(ctx, domain.EventLogin, username, "success", meta)
	return token, user, nil
}

// Logout revokes the session's token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, session domain.Session, meta ports.RequestMeta) error {
	if err := s.denylist.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		EventType: domain.EventLogout,
		Actor:     session.Username,
		Path:      meta.Path,
		Outcome:   "success",
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
	return nil
}

// ParseToken validates signature, expiry and revocation, then reloads the user
// so deleted accounts are rejected and role changes apply immediately. A
// denylist outage is logged and the token is accepted.
func (s *AuthService) ParseToken(ctx context.Context, raw string) (*domain.Session, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthorized
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || claims.Role == "" || claims.ID == "" {
		return nil, domain.ErrUnauthorized
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("username", claims.Username).Msg("revocation check failed, accepting token")
	} else if revoked {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, uint(id))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("load token user: %w", err)
	}

	session := &domain.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) recordLogin(ctx context.Context, event, username, outcome string, meta ports.RequestMeta) {
	result := "success"
	if event == domain.EventLoginFailed {
		result = "failure"
	}
	metrics.LoginsTotal.WithLabelValues(result).Inc()

	s.audit.Record(ctx, domain.AuditEntry{
		EventType: event,
		Actor:     username,
		Path:      meta.Path,
		Outcome:   outcome,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
}
