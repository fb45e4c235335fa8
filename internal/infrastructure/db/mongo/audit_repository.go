package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

// AuditRepository implements ports.AuditRepository on the audit_logs collection.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

type countDoc struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	doc := bson.M{
		"event_type": entry.EventType,
		"actor":      entry.Actor,
		"path":       entry.Path,
		"outcome":    entry.Outcome,
		"ip_address": entry.IPAddress,
		"user_agent": entry.UserAgent,
		"created_at": entry.CreatedAt.UTC(),
	}
	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) CountByEventType(ctx context.Context, since time.Time) ([]domain.Count, error) {
	return r.aggregate(ctx, bson.M{"created_at": bson.M{"$gte": since.UTC()}}, "$event_type", byCountDesc, 0)
}

func (r *AuditRepository) CountByOutcome(ctx context.Context, eventType string, since time.Time) ([]domain.Count, error) {
	match := bson.M{"event_type": eventType, "created_at": bson.M{"$gte": since.UTC()}}
	return r.aggregate(ctx, match, "$outcome", byCountDesc, 0)
}

func (r *AuditRepository) TopPaths(ctx context.Context, eventType string, since time.Time, limit int) ([]domain.Count, error) {
	match := bson.M{
		"event_type": eventType,
		"created_at": bson.M{"$gte": since.UTC()},
		"path":       bson.M{"$ne": ""},
	}
	return r.aggregate(ctx, match, "$path", byCountDesc, limit)
}

func (r *AuditRepository) DailyCounts(ctx context.Context, eventType string, since time.Time) ([]domain.Count, error) {
	match := bson.M{"event_type": eventType, "created_at": bson.M{"$gte": since.UTC()}}
	day := bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at", "timezone": "UTC"}}
	return r.aggregate(ctx, match, day, bson.D{{Key: "_id", Value: 1}}, 0)
}

var byCountDesc = bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}

func (r *AuditRepository) aggregate(ctx context.Context, match bson.M, groupKey any, sort bson.D, limit int) ([]domain.Count, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": groupKey, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: sort}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cur, err := r.db.Collection(auditCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate audit entries: %w", err)
	}
	var docs []countDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit aggregate: %w", err)
	}

	out := make([]domain.Count, len(docs))
	for i, d := range docs {
		out[i] = domain.Count{Key: d.Key, Count: d.Count}
	}
	return out, nil
}
