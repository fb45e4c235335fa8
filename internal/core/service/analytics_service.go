package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

const (
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 365
	topPathsLimit        = 10
)

// AnalyticsService records page visits and aggregates the audit log.
type AnalyticsService struct {
	repo  ports.AuditRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
	now   func() time.Time
}

func NewAnalyticsService(repo ports.AuditRepository, audit ports.AuditRecorder, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, audit: audit, log: log, now: time.Now}
}

func (s *AnalyticsService) RecordVisit(ctx context.Context, actor string, meta ports.RequestMeta) {
	s.audit.Record(ctx, domain.AuditEntry{
		EventType: domain.EventVisit,
		Actor:     actor,
		Path:      meta.Path,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
}

// Summary aggregates the last days of audit entries. Zero selects the default window.
func (s *AnalyticsService) Summary(ctx context.Context, days int) (*ports.Analytics, error) {
	switch {
	case days == 0:
		days = defaultAnalyticsDays
	case days < 0 || days > maxAnalyticsDays:
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrInvalidInput, maxAnalyticsDays)
	}

	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	counts, err := s.repo.CountByEventType(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	daily, err := s.repo.DailyCounts(ctx, domain.EventVisit, since)
	if err != nil {
		return nil, fmt.Errorf("daily visits: %w", err)
	}
	paths, err := s.repo.TopPaths(ctx, domain.EventVisit, since, topPathsLimit)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	outcomes, err := s.repo.CountByOutcome(ctx, domain.EventCodeValidation, since)
	if err != nil {
		return nil, fmt.Errorf("code validations: %w", err)
	}

	return &ports.Analytics{
		Since:           since,
		EventCounts:     counts,
		DailyVisits:     fillDays(daily, since, now),
		TopPaths:        paths,
		CodeValidations: outcomes,
	}, nil
}

// fillDays returns one row per UTC day from since to now, zero-filling gaps.
func fillDays(rows []domain.Count, since, now time.Time) []domain.Count {
	byDay := make(map[string]int64, len(rows))
	for _, r := range rows {
		byDay[r.Key] = r.Count
	}
	var out []domain.Count
	for d := since; !d.After(now); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		out = append(out, domain.Count{Key: key, Count: byDay[key]})
	}
	return out
}
