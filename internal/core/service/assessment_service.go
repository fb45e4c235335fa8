package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orgmaturity/assessment-api/internal/api/metrics"
	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

const (
	codeLength   = 8
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	minScore     = 1
	maxScore     = 5
)

// AssessmentService manages codes and the respondent flow.
type AssessmentService struct {
	repo  ports.AssessmentRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
	now   func() time.Time
}

func NewAssessmentService(repo ports.AssessmentRepository, audit ports.AuditRecorder, log zerolog.Logger) *AssessmentService {
	return &AssessmentService{repo: repo, audit: audit, log: log, now: time.Now}
}

// CreateCode stores a new code. A code is generated when none is supplied.
func (s *AssessmentService) CreateCode(ctx context.Context, in ports.CreateCodeInput) (*domain.AssessmentCode, error) {
	if strings.TrimSpace(in.Organization) == "" {
		return nil, fmt.Errorf("%w: organization is required", domain.ErrInvalidInput)
	}
	if in.MaxUses < 0 || in.ExpiresInDays < 0 {
		return nil, fmt.Errorf("%w: max_uses and expires_in_days must not be negative", domain.ErrInvalidInput)
	}

	code := domain.NormalizeCode(in.Code)
	if code == "" {
		generated, err := generateCode()
		if err != nil {
			return nil, err
		}
		code = generated
	}

	now := s.now().UTC()
	c := &domain.AssessmentCode{
		Code:         code,
		Organization: in.Organization,
		Questions:    in.Questions,
		MaxUses:      in.MaxUses,
		Active:       true,
		CreatedBy:    in.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if c.Questions == nil {
		c.Questions = []string{}
	}
	if in.ExpiresInDays > 0 {
		exp := now.AddDate(0, 0, in.ExpiresInDays)
		c.ExpiresAt = &exp
	}

	if err := s.repo.CreateCode(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Str("code", c.Code).Str("organization", c.Organization).Msg("assessment code created")
	return c, nil
}

func (s *AssessmentService) ListCodes(ctx context.Context) ([]domain.AssessmentCode, error) {
	return s.repo.ListCodes(ctx)
}

func (s *AssessmentService) DeactivateCode(ctx context.Context, code string) error {
	return s.repo.DeactivateCode(ctx, domain.NormalizeCode(code))
}

func (s *AssessmentService) DeleteCode(ctx context.Context, code string) error {
	return s.repo.DeleteCode(ctx, domain.NormalizeCode(code))
}

// ValidateCode upper-cases the code, checks it and records one audit entry
// for the attempt whatever the outcome.
func (s *AssessmentService) ValidateCode(ctx context.Context, raw string, meta ports.RequestMeta) (*domain.AssessmentCode, error) {
	code := domain.NormalizeCode(raw)
	outcome := "error"
	defer func() {
		metrics.CodeValidationsTotal.WithLabelValues(outcome).Inc()
		s.audit.Record(ctx, domain.AuditEntry{
			EventType: domain.EventCodeValidation,
			Actor:     code,
			Path:      meta.Path,
			Outcome:   outcome,
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
		})
	}()

	if code == "" {
		outcome = "invalid"
		return nil, fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	}

	c, err := s.usableCode(ctx, code)
	if err != nil {
		outcome = validationOutcome(err)
		return nil, err
	}
	outcome = "valid"
	return c, nil
}

// StartSession opens a session against a usable code and consumes one use.
func (s *AssessmentService) StartSession(ctx context.Context, in ports.StartSessionInput) (*domain.AssessmentSession, error) {
	code := domain.NormalizeCode(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	}
	c, err := s.usableCode(ctx, code)
	if err != nil {
		return nil, err
	}

	// The conditional increment is the authoritative use-limit check; the
	// read above only produces the friendlier errors.
	if err := s.repo.IncrementCodeUse(ctx, c.Code); err != nil {
		return nil, fmt.Errorf("consume code: %w", err)
	}

	session := &domain.AssessmentSession{
		ID:              uuid.NewString(),
		Code:            c.Code,
		Organization:    c.Organization,
		RespondentName:  in.RespondentName,
		RespondentEmail: in.RespondentEmail,
		Status:          domain.SessionInProgress,
		StartedAt:       s.now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info().Str("session_id", session.ID).Str("code", c.Code).Msg("assessment session started")
	return session, nil
}

func (s *AssessmentService) SubmitResponse(ctx context.Context, sessionID string, in ports.ResponseInput) (*domain.AssessmentResponse, error) {
	if strings.TrimSpace(in.QuestionID) == "" {
		return nil, fmt.Errorf("%w: question_id is required", domain.ErrInvalidInput)
	}
	if in.Score < minScore || in.Score > maxScore {
		return nil, fmt.Errorf("%w: score must be between %d and %d", domain.ErrInvalidInput, minScore, maxScore)
	}

	session, err := s.repo.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.SessionCompleted {
		return nil, domain.ErrSessionCompleted
	}

	r := &domain.AssessmentResponse{
		SessionID:   session.ID,
		QuestionID:  in.QuestionID,
		SubdomainID: in.SubdomainID,
		Score:       in.Score,
		Comment:     in.Comment,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateResponse(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// CompleteSession closes the session and scores it from the latest answer to
// each question.
func (s *AssessmentService) CompleteSession(ctx context.Context, sessionID string) (*domain.MaturityResult, error) {
	session, err := s.repo.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.SessionCompleted {
		return nil, domain.ErrSessionCompleted
	}

	responses, err := s.repo.ListResponses(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.repo.CompleteSession(ctx, session.ID, now); err != nil {
		return nil, err
	}
	if err := s.repo.MarkCodeCompleted(ctx, session.Code, now); err != nil {
		s.log.Warn().Err(err).Str("code", session.Code).Msg("failed to stamp code completion")
	}

	metrics.SessionsCompletedTotal.Inc()
	result := scoreResponses(session.ID, responses)
	s.log.Info().Str("session_id", session.ID).Float64("overall", result.Overall).Msg("assessment session completed")
	return result, nil
}

func (s *AssessmentService) ListSessions(ctx context.Context, code string) ([]domain.AssessmentSession, error) {
	code = domain.NormalizeCode(code)
	if _, err := s.repo.FindCode(ctx, code); err != nil {
		return nil, err
	}
	return s.repo.ListSessions(ctx, code)
}

func (s *AssessmentService) usableCode(ctx context.Context, code string) (*domain.AssessmentCode, error) {
	c, err := s.repo.FindCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := c.Usable(s.now()); err != nil {
		return nil, err
	}
	return c, nil
}

func validationOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrCodeNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrCodeInactive):
		return "inactive"
	case errors.Is(err, domain.ErrCodeExpired):
		return "expired"
	case errors.Is(err, domain.ErrCodeExhausted):
		return "exhausted"
	default:
		return "error"
	}
}

// scoreResponses keeps the latest response per question (responses arrive
// ordered by creation) and averages them per subdomain and overall.
func scoreResponses(sessionID string, responses []domain.AssessmentResponse) *domain.MaturityResult {
	latest := make(map[string]domain.AssessmentResponse, len(responses))
	for _, r := range responses {
		latest[r.QuestionID] = r
	}

	type acc struct {
		sum, n int
	}
	bySub := make(map[uint]*acc)
	total, count := 0, 0
	for _, r := range latest {
		a, ok := bySub[r.SubdomainID]
		if !ok {
			a = &acc{}
			bySub[r.SubdomainID] = a
		}
		a.sum += r.Score
		a.n++
		total += r.Score
		count++
	}

	result := &domain.MaturityResult{SessionID: sessionID, Subdomains: make([]domain.SubdomainScore, 0, len(bySub))}
	for id, a := range bySub {
		result.Subdomains = append(result.Subdomains, domain.SubdomainScore{
			SubdomainID: id,
			Average:     round2(float64(a.sum) / float64(a.n)),
			Answered:    a.n,
		})
	}
	sort.Slice(result.Subdomains, func(i, j int) bool {
		return result.Subdomains[i].SubdomainID < result.Subdomains[j].SubdomainID
	})
	if count > 0 {
		result.Overall = round2(float64(total) / float64(count))
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// generateCode returns codeLength characters drawn from codeAlphabet.
func generateCode() (string, error) {
	b := make([]byte, codeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b), nil
}
