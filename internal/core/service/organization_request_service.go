package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgmaturity/assessment-api/internal/api/metrics"
	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

var requestTypes = map[string]struct{}{
	"demo":         {},
	"assessment":   {},
	"consultation": {},
	"other":        {},
}

var requestStatuses = map[string]struct{}{
	domain.RequestStatusNew:       {},
	domain.RequestStatusContacted: {},
	domain.RequestStatusClosed:    {},
}

// OrganizationRequestService records lead-capture submissions. Submissions
// are never deduplicated.
type OrganizationRequestService struct {
	repo ports.OrganizationRequestRepository
	log  zerolog.Logger
}

func NewOrganizationRequestService(repo ports.OrganizationRequestRepository, log zerolog.Logger) *OrganizationRequestService {
	return &OrganizationRequestService{repo: repo, log: log}
}

func (s *OrganizationRequestService) Submit(ctx context.Context, in ports.OrganizationRequestInput) (*domain.OrganizationRequest, error) {
	switch {
	case strings.TrimSpace(in.OrganizationName) == "":
		return nil, fmt.Errorf("%w: organization_name is required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.ContactName) == "":
		return nil, fmt.Errorf("%w: contact_name is required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Email) == "":
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fmt.Errorf("%w: email must be a valid email", domain.ErrInvalidInput)
	}
	if _, ok := requestTypes[in.RequestType]; !ok {
		return nil, fmt.Errorf("%w: request_type must be one of: demo assessment consultation other", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	r := &domain.OrganizationRequest{
		OrganizationName: in.OrganizationName,
		ContactName:      in.ContactName,
		Email:            in.Email,
		Phone:            in.Phone,
		RequestType:      in.RequestType,
		Message:          in.Message,
		Status:           domain.RequestStatusNew,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	metrics.OrganizationRequestsTotal.WithLabelValues(r.RequestType).Inc()
	s.log.Info().Uint("request_id", r.ID).Str("organization", r.OrganizationName).Str("type", r.RequestType).Msg("organization request received")
	return r, nil
}

func (s *OrganizationRequestService) List(ctx context.Context, status string) ([]domain.OrganizationRequest, error) {
	if status != "" {
		if _, ok := requestStatuses[status]; !ok {
			return nil, fmt.Errorf("%w: status must be one of: new contacted closed", domain.ErrInvalidInput)
		}
	}
	return s.repo.List(ctx, status)
}

func (s *OrganizationRequestService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if _, ok := requestStatuses[status]; !ok {
		return fmt.Errorf("%w: status must be one of: new contacted closed", domain.ErrInvalidInput)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *OrganizationRequestService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
