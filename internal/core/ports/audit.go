package ports

import (
	"context"
	"time"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

// AuditRepository is the append-only store behind the audit log.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// CountByEventType counts entries created at or after since, keyed by event type.
	CountByEventType(ctx context.Context, since time.Time) ([]domain.Count, error)
	// CountByOutcome counts entries of one event type, keyed by outcome.
	CountByOutcome(ctx context.Context, eventType string, since time.Time) ([]domain.Count, error)
	// TopPaths returns the most frequent paths of one event type.
	TopPaths(ctx context.Context, eventType string, since time.Time, limit int) ([]domain.Count, error)
	// DailyCounts counts entries of one event type per UTC day (key YYYY-MM-DD), ascending.
	DailyCounts(ctx context.Context, eventType string, since time.Time) ([]domain.Count, error)
}

// AuditRecorder accepts audit entries. Implementations may persist asynchronously.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry)
}

// Analytics is the dashboard aggregate over the audit log.
type Analytics struct {
	Since           time.Time
	EventCounts     []domain.Count
	DailyVisits     []domain.Count
	TopPaths        []domain.Count
	CodeValidations []domain.Count
}

type AnalyticsService interface {
	RecordVisit(ctx context.Context, actor string, meta RequestMeta)
	Summary(ctx context.Context, days int) (*Analytics, error)
}
