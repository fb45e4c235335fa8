package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

// TaxonomyService manages domains and subdomains.
type TaxonomyService struct {
	repo ports.TaxonomyRepository
	log  zerolog.Logger
}

func NewTaxonomyService(repo ports.TaxonomyRepository, log zerolog.Logger) *TaxonomyService {
	return &TaxonomyService{repo: repo, log: log}
}

func (s *TaxonomyService) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	return s.repo.ListDomains(ctx)
}

func (s *TaxonomyService) CreateDomain(ctx context.Context, in ports.DomainInput) (*domain.Domain, error) {
	if strings.TrimSpace(in.NameEn) == "" {
		return nil, fmt.Errorf("%w: name_en is required", domain.ErrInvalidInput)
	}
	d := &domain.Domain{NameEn: in.NameEn, NameFr: in.NameFr, DisplayOrder: in.DisplayOrder}
	if err := s.repo.CreateDomain(ctx, d); err != nil {
		return nil, err
	}
	s.log.Info().Uint("domain_id", d.ID).Str("name", d.NameEn).Msg("domain created")
	return d, nil
}

func (s *TaxonomyService) UpdateDomain(ctx context.Context, id uint, in ports.DomainInput) (*domain.Domain, error) {
	d, err := s.repo.FindDomain(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.NameEn != "" {
		d.NameEn = in.NameEn
	}
	if in.NameFr != "" {
		d.NameFr = in.NameFr
	}
	d.DisplayOrder = in.DisplayOrder
	if err := s.repo.UpdateDomain(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *TaxonomyService) DeleteDomain(ctx context.Context, id uint) error {
	if err := s.repo.DeleteDomain(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("domain_id", id).Msg("domain deleted")
	return nil
}

func (s *TaxonomyService) CreateSubdomain(ctx context.Context, in ports.SubdomainInput) (*domain.Subdomain, error) {
	if strings.TrimSpace(in.NameEn) == "" {
		return nil, fmt.Errorf("%w: name_en is required", domain.ErrInvalidInput)
	}
	if _, err := s.repo.FindDomain(ctx, in.DomainID); err != nil {
		return nil, err
	}
	sub := &domain.Subdomain{
		DomainID:       in.DomainID,
		NameEn:         in.NameEn,
		NameFr:         in.NameFr,
		DisplayOrder:   in.DisplayOrder,
		LeadConsultant: in.LeadConsultant,
	}
	if err := s.repo.CreateSubdomain(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info().Uint("subdomain_id", sub.ID).Uint("domain_id", sub.DomainID).Msg("subdomain created")
	return sub, nil
}

// UpdateSubdomain overwrites the writable fields. A zero DomainID keeps the
// current parent; the lead consultant is always replaced.
func (s *TaxonomyService) UpdateSubdomain(ctx context.Context, id uint, in ports.SubdomainInput) (*domain.Subdomain, error) {
	sub, err := s.repo.FindSubdomain(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.DomainID != 0 && in.DomainID != sub.DomainID {
		if _, err := s.repo.FindDomain(ctx, in.DomainID); err != nil {
			return nil, err
		}
		sub.DomainID = in.DomainID
	}
	if in.NameEn != "" {
		sub.NameEn = in.NameEn
	}
	if in.NameFr != "" {
		sub.NameFr = in.NameFr
	}
	sub.DisplayOrder = in.DisplayOrder
	sub.LeadConsultant = in.LeadConsultant

	if err := s.repo.UpdateSubdomain(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *TaxonomyService) DeleteSubdomain(ctx context.Context, id uint) error {
	return s.repo.DeleteSubdomain(ctx, id)
}
