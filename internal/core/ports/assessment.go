package ports

import (
	"context"
	"time"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

// AssessmentRepository persists codes, sessions and responses.
type AssessmentRepository interface {
	CreateCode(ctx context.Context, c *domain.AssessmentCode) error
	FindCode(ctx context.Context, code string) (*domain.AssessmentCode, error)
	ListCodes(ctx context.Context) ([]domain.AssessmentCode, error)
	DeactivateCode(ctx context.Context, code string) error
	DeleteCode(ctx context.Context, code string) error
	// IncrementCodeUse consumes one use, failing with ErrCodeExhausted once
	// max_uses is reached.
	IncrementCodeUse(ctx context.Context, code string) error
	MarkCodeCompleted(ctx context.Context, code string, at time.Time) error

	CreateSession(ctx context.Context, s *domain.AssessmentSession) error
	FindSession(ctx context.Context, id string) (*domain.AssessmentSession, error)
	CompleteSession(ctx context.Context, id string, at time.Time) error
	// ListSessions returns the sessions of a code with ResponseCount populated.
	ListSessions(ctx context.Context, code string) ([]domain.AssessmentSession, error)

	CreateResponse(ctx context.Context, r *domain.AssessmentResponse) error
	// ListResponses returns a session's responses ordered by creation.
	ListResponses(ctx context.Context, sessionID string) ([]domain.AssessmentResponse, error)
}

// CreateCodeInput carries the fields of a new assessment code.
type CreateCodeInput struct {
	Code          string
	Organization  string
	Questions     []string
	MaxUses       int
	ExpiresInDays int
	CreatedBy     string
}

// StartSessionInput opens a session against a code.
type StartSessionInput struct {
	Code            string
	RespondentName  string
	RespondentEmail string
}

// ResponseInput is a single scored answer.
type ResponseInput struct {
	QuestionID  string
	SubdomainID uint
	Score       int
	Comment     string
}

type AssessmentService interface {
	CreateCode(ctx context.Context, in CreateCodeInput) (*domain.AssessmentCode, error)
	ListCodes(ctx context.Context) ([]domain.AssessmentCode, error)
	DeactivateCode(ctx context.Context, code string) error
	DeleteCode(ctx context.Context, code string) error
	// ValidateCode checks a code and records exactly one audit entry for the attempt.
	ValidateCode(ctx context.Context, code string, meta RequestMeta) (*domain.AssessmentCode, error)
	StartSession(ctx context.Context, in StartSessionInput) (*domain.AssessmentSession, error)
	SubmitResponse(ctx context.Context, sessionID string, in ResponseInput) (*domain.AssessmentResponse, error)
	CompleteSession(ctx context.Context, sessionID string) (*domain.MaturityResult, error)
	ListSessions(ctx context.Context, code string) ([]domain.AssessmentSession, error)
}
