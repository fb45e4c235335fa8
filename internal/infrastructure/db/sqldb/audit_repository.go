package sqldb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

// AuditRepository is the relational audit log.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// labelCount avoids "key", which is reserved in some dialects.
type labelCount struct {
	Label string
	Total int64
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) CountByEventType(ctx context.Context, since time.Time) ([]domain.Count, error) {
	return r.grouped(ctx, "event_type", r.db.Where("created_at >= ?", since), 0)
}

func (r *AuditRepository) CountByOutcome(ctx context.Context, eventType string, since time.Time) ([]domain.Count, error) {
	return r.grouped(ctx, "outcome", r.db.Where("event_type = ? AND created_at >= ?", eventType, since), 0)
}

func (r *AuditRepository) TopPaths(ctx context.Context, eventType string, since time.Time, limit int) ([]domain.Count, error) {
	filter := r.db.Where("event_type = ? AND created_at >= ? AND path <> ''", eventType, since)
	return r.grouped(ctx, "path", filter, limit)
}

// DailyCounts buckets in Go so the query stays portable across drivers.
func (r *AuditRepository) DailyCounts(ctx context.Context, eventType string, since time.Time) ([]domain.Count, error) {
	var stamps []time.Time
	err := r.db.WithContext(ctx).Model(&domain.AuditEntry{}).
		Where("event_type = ? AND created_at >= ?", eventType, since).
		Order("created_at").
		Pluck("created_at", &stamps).Error
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}

	var out []domain.Count
	for _, ts := range stamps {
		day := ts.UTC().Format(time.DateOnly)
		if n := len(out); n > 0 && out[n-1].Key == day {
			out[n-1].Count++
			continue
		}
		out = append(out, domain.Count{Key: day, Count: 1})
	}
	return out, nil
}

func (r *AuditRepository) grouped(ctx context.Context, column string, filter *gorm.DB, limit int) ([]domain.Count, error) {
	q := r.db.WithContext(ctx).Model(&domain.AuditEntry{}).
		Select(column + " AS label, COUNT(*) AS total").
		Where(filter).
		Group(column).
		Order("total DESC, label")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []labelCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count audit entries by %s: %w", column, err)
	}

	out := make([]domain.Count, len(rows))
	for i, row := range rows {
		out[i] = domain.Count{Key: row.Label, Count: row.Total}
	}
	return out, nil
}
