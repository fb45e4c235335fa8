package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

// workloadFanOut bounds the number of concurrent workload queries.
const workloadFanOut = 8

// ConsultantService reports and reassigns lead consultant workloads.
type ConsultantService struct {
	users    ports.UserRepository
	taxonomy ports.TaxonomyRepository
	log      zerolog.Logger
}

func NewConsultantService(users ports.UserRepository, taxonomy ports.TaxonomyRepository, log zerolog.Logger) *ConsultantService {
	return &ConsultantService{users: users, taxonomy: taxonomy, log: log}
}

// ListWorkloads returns every lead consultant with the subdomains they lead.
// The per-consultant reads are independent and run concurrently.
func (s *ConsultantService) ListWorkloads(ctx context.Context) ([]domain.ConsultantWorkload, error) {
	consultants, err := s.users.List(ctx, domain.RoleLeadConsultant)
	if err != nil {
		return nil, fmt.Errorf("list lead consultants: %w", err)
	}

	out := make([]domain.ConsultantWorkload, len(consultants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workloadFanOut)
	for i, u := range consultants {
		g.Go(func() error {
			subs, err := s.taxonomy.SubdomainsLedBy(gctx, u.Username)
			if err != nil {
				return fmt.Errorf("workload for %s: %w", u.Username, err)
			}
			out[i] = domain.ConsultantWorkload{User: u, Subdomains: subs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Reassign makes ids exactly the set of subdomains led by username.
func (s *ConsultantService) Reassign(ctx context.Context, username string, ids []uint) ([]domain.Subdomain, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotLeadConsultant
		}
		return nil, err
	}
	if user.Role != domain.RoleLeadConsultant {
		return nil, domain.ErrNotLeadConsultant
	}

	unique := dedupeIDs(ids)
	if err := s.taxonomy.ReassignLeadConsultant(ctx, username, unique); err != nil {
		return nil, err
	}

	s.log.Info().Str("consultant", username).Int("subdomains", len(unique)).Msg("lead consultant reassigned")
	return s.taxonomy.SubdomainsLedBy(ctx, username)
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
