package ports

import (
	"context"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

type OrganizationRequestRepository interface {
	Create(ctx context.Context, r *domain.OrganizationRequest) error
	List(ctx context.Context, status string) ([]domain.OrganizationRequest, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

// OrganizationRequestInput carries a lead-capture submission.
type OrganizationRequestInput struct {
	OrganizationName string
	ContactName      string
	Email            string
	Phone            string
	RequestType      string
	Message          string
}

type OrganizationRequestService interface {
	Submit(ctx context.Context, in OrganizationRequestInput) (*domain.OrganizationRequest, error)
	List(ctx context.Context, status string) ([]domain.OrganizationRequest, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}
