package ports

import (
	"context"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

// TaxonomyRepository persists domains and subdomains.
type TaxonomyRepository interface {
	// ListDomains returns every domain with its subdomains, both by display order.
	ListDomains(ctx context.Context) ([]domain.Domain, error)
	CountDomains(ctx context.Context) (int64, error)
	CreateDomain(ctx context.Context, d *domain.Domain) error
	UpdateDomain(ctx context.Context, d *domain.Domain) error
	FindDomain(ctx context.Context, id uint) (*domain.Domain, error)
	// DeleteDomain removes the domain's subdomains, then the domain. It is not atomic.
	DeleteDomain(ctx context.Context, id uint) error

	CreateSubdomain(ctx context.Context, s *domain.Subdomain) error
	UpdateSubdomain(ctx context.Context, s *domain.Subdomain) error
	FindSubdomain(ctx context.Context, id uint) (*domain.Subdomain, error)
	DeleteSubdomain(ctx context.Context, id uint) error

	// SubdomainsLedBy returns the subdomains whose lead consultant is username.
	SubdomainsLedBy(ctx context.Context, username string) ([]domain.Subdomain, error)
	// ReassignLeadConsultant clears username from every subdomain it leads and
	// assigns it to exactly ids, in one transaction.
	ReassignLeadConsultant(ctx context.Context, username string, ids []uint) error
}

// DomainInput carries writable domain fields.
type DomainInput struct {
	NameEn       string
	NameFr       string
	DisplayOrder int
}

// SubdomainInput carries writable subdomain fields.
type SubdomainInput struct {
	DomainID       uint
	NameEn         string
	NameFr         string
	DisplayOrder   int
	LeadConsultant string
}

type TaxonomyService interface {
	ListDomains(ctx context.Context) ([]domain.Domain, error)
	CreateDomain(ctx context.Context, in DomainInput) (*domain.Domain, error)
	UpdateDomain(ctx context.Context, id uint, in DomainInput) (*domain.Domain, error)
	DeleteDomain(ctx context.Context, id uint) error
	CreateSubdomain(ctx context.Context, in SubdomainInput) (*domain.Subdomain, error)
	UpdateSubdomain(ctx context.Context, id uint, in SubdomainInput) (*domain.Subdomain, error)
	DeleteSubdomain(ctx context.Context, id uint) error
}

type ConsultantService interface {
	ListWorkloads(ctx context.Context) ([]domain.ConsultantWorkload, error)
	Reassign(ctx context.Context, username string, subdomainIDs []uint) ([]domain.Subdomain, error)
}
