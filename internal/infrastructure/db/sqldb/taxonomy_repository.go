package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

type TaxonomyRepository struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

func (r *TaxonomyRepository) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	var domains []domain.Domain
	err := r.db.WithContext(ctx).
		Preload("Subdomains", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order, id")
		}).
		Order("display_order, id").
		Find(&domains).Error
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	return domains, nil
}

func (r *TaxonomyRepository) CountDomains(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Domain{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count domains: %w", err)
	}
	return n, nil
}

func (r *TaxonomyRepository) CreateDomain(ctx context.Context, d *domain.Domain) error {
	if err := r.db.WithContext(ctx).Omit("Subdomains").Create(d).Error; err != nil {
		return fmt.Errorf("insert domain: %w", err)
	}
	return nil
}

func (r *TaxonomyRepository) UpdateDomain(ctx context.Context, d *domain.Domain) error {
	if err := r.db.WithContext(ctx).Omit("Subdomains").Save(d).Error; err != nil {
		return fmt.Errorf("update domain: %w", err)
	}
	return nil
}

func (r *TaxonomyRepository) FindDomain(ctx context.Context, id uint) (*domain.Domain, error) {
	var d domain.Domain
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDomainNotFound
		}
		return nil, fmt.Errorf("find domain: %w", err)
	}
	return &d, nil
}

// DeleteDomain removes the subdomains first and the domain second, as two
// independent statements.
func (r *TaxonomyRepository) DeleteDomain(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("domain_id = ?", id).Delete(&domain.Subdomain{}).Error; err != nil {
		return fmt.Errorf("delete subdomains: %w", err)
	}
	res := db.Delete(&domain.Domain{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete domain: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrDomainNotFound
	}
	return nil
}

func (r *TaxonomyRepository) CreateSubdomain(ctx context.Context, s *domain.Subdomain) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("insert subdomain: %w", err)
	}
	return nil
}

func (r *TaxonomyRepository) UpdateSubdomain(ctx context.Context, s *domain.Subdomain) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("update subdomain: %w", err)
	}
	return nil
}

func (r *TaxonomyRepository) FindSubdomain(ctx context.Context, id uint) (*domain.Subdomain, error) {
	var s domain.Subdomain
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubdomainNotFound
		}
		return nil, fmt.Errorf("find subdomain: %w", err)
	}
	return &s, nil
}

func (r *TaxonomyRepository) DeleteSubdomain(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Subdomain{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete subdomain: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrSubdomainNotFound
	}
	return nil
}

func (r *TaxonomyRepository) SubdomainsLedBy(ctx context.Context, username string) ([]domain.Subdomain, error) {
	var subs []domain.Subdomain
	err := r.db.WithContext(ctx).
		Where("lead_consultant = ?", username).
		Order("domain_id, display_order, id").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("subdomains led by %s: %w", username, err)
	}
	return subs, nil
}

// ReassignLeadConsultant runs clear-then-assign in a single transaction. Any
// id that does not exist rolls the whole change back.
func (r *TaxonomyRepository) ReassignLeadConsultant(ctx context.Context, username string, ids []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Subdomain{}).
			Where("lead_consultant = ?", username).
			Update("lead_consultant", "").Error
		if err != nil {
			return fmt.Errorf("clear assignments: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		res := tx.Model(&domain.Subdomain{}).
			Where("id IN ?", ids).
			Update("lead_consultant", username)
		if res.Error != nil {
			return fmt.Errorf("assign subdomains: %w", res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			return domain.ErrSubdomainNotFound
		}
		return nil
	})
}
