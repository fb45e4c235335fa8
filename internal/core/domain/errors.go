package domain

import "errors"

var (
	// ErrInvalidInput is wrapped with a human readable reason; the reason is returned to the client.
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")

	ErrDomainNotFound    = errors.New("domain not found")
	ErrSubdomainNotFound = errors.New("subdomain not found")
	ErrNotLeadConsultant = errors.New("lead consultant not found")

	ErrCodeNotFound  = errors.New("assessment code not found")
	ErrCodeExists    = errors.New("assessment code already exists")
	ErrCodeInactive  = errors.New("assessment code is inactive")
	ErrCodeExpired   = errors.New("assessment code has expired")
	ErrCodeExhausted = errors.New("assessment code has no remaining uses")

	ErrSessionNotFound  = errors.New("assessment session not found")
	ErrSessionCompleted = errors.New("assessment session already completed")

	ErrRequestNotFound = errors.New("organization request not found")
	ErrEntryNotFound   = errors.New("hours entry not found")
)
