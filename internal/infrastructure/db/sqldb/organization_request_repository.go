package sqldb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

type OrganizationRequestRepository struct {
	db *gorm.DB
}

func NewOrganizationRequestRepository(db *gorm.DB) *OrganizationRequestRepository {
	return &OrganizationRequestRepository{db: db}
}

func (r *OrganizationRequestRepository) Create(ctx context.Context, req *domain.OrganizationRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("insert organization request: %w", err)
	}
	return nil
}

// List returns requests newest first, optionally filtered by status.
func (r *OrganizationRequestRepository) List(ctx context.Context, status string) ([]domain.OrganizationRequest, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.OrganizationRequest
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list organization requests: %w", err)
	}
	return out, nil
}

func (r *OrganizationRequestRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&domain.OrganizationRequest{ID: id}).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update organization request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *OrganizationRequestRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.OrganizationRequest{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete organization request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}
