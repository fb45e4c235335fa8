package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

type seedDomain struct {
	en, fr     string
	subdomains [][2]string
}

var defaultTaxonomy = []seedDomain{
	{"Governance", "Gouvernance", [][2]string{{"Leadership", "Leadership"}, {"Risk Management", "Gestion des risques"}}},
	{"Strategy", "Stratégie", [][2]string{{"Vision", "Vision"}, {"Planning", "Planification"}}},
	{"Operations", "Opérations", [][2]string{{"Processes", "Processus"}, {"Quality", "Qualité"}}},
	{"Technology", "Technologie", [][2]string{{"Infrastructure", "Infrastructure"}, {"Data", "Données"}}},
	{"People & Culture", "Personnes et culture", [][2]string{{"Skills", "Compétences"}, {"Engagement", "Engagement"}}},
}

// SystemService runs schema migration and first-run seeding.
type SystemService struct {
	migrator ports.Migrator
	taxonomy ports.TaxonomyRepository
	log      zerolog.Logger
}

func NewSystemService(migrator ports.Migrator, taxonomy ports.TaxonomyRepository, log zerolog.Logger) *SystemService {
	return &SystemService{migrator: migrator, taxonomy: taxonomy, log: log}
}

// Initialize migrates the schema and seeds the default taxonomy when no
// domain exists yet. Calling it again is harmless.
func (s *SystemService) Initialize(ctx context.Context) (*ports.InitResult, error) {
	if err := s.migrator.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	result := &ports.InitResult{Migrated: true}

	n, err := s.taxonomy.CountDomains(ctx)
	if err != nil {
		return nil, fmt.Errorf("count domains: %w", err)
	}
	if n > 0 {
		return result, nil
	}

	for i, sd := range defaultTaxonomy {
		d := &domain.Domain{NameEn: sd.en, NameFr: sd.fr, DisplayOrder: i + 1}
		if err := s.taxonomy.CreateDomain(ctx, d); err != nil {
			return nil, fmt.Errorf("seed domain %q: %w", sd.en, err)
		}
		for j, names := range sd.subdomains {
			sub := &domain.Subdomain{DomainID: d.ID, NameEn: names[0], NameFr: names[1], DisplayOrder: j + 1}
			if err := s.taxonomy.CreateSubdomain(ctx, sub); err != nil {
				return nil, fmt.Errorf("seed subdomain %q: %w", names[0], err)
			}
		}
		result.SeededDomains++
	}

	s.log.Info().Int("domains", result.SeededDomains).Msg("default taxonomy seeded")
	return result, nil
}
